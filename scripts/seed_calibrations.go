// seed_calibrations.go: standalone script to load calibration profiles from YAML
// and upsert them through the Validator API.
//
// Usage:
//
//	go run scripts/seed_calibrations.go -file scripts/calibrations.example.yaml -api http://localhost:8700 -token $VALIDATOR_ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type calibrationFile struct {
	Calibrations []calibration `yaml:"calibrations"`
}

type calibration struct {
	Name           string  `yaml:"name"`
	BiasCorrection float64 `yaml:"bias_correction"`
	Note           string  `yaml:"note"`
}

type putRequest struct {
	BiasCorrection float64 `json:"bias_correction"`
	Note           string  `json:"note,omitempty"`
}

func main() {
	path := flag.String("file", "calibrations.yaml", "path to calibrations YAML file")
	apiURL := flag.String("api", "http://localhost:8700", "Validator API base URL")
	token := flag.String("token", os.Getenv("VALIDATOR_ADMIN_TOKEN"), "admin bearer token")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print profiles without sending")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read %s: %v", *path, err)
	}
	var file calibrationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Fatalf("parse %s: %v", *path, err)
	}

	log.Printf("parsed %d calibrations from %s", len(file.Calibrations), *path)

	if *dryRun {
		for i, c := range file.Calibrations {
			fmt.Printf("[%d] %s (bias_correction=%g) %s\n", i+1, c.Name, c.BiasCorrection, c.Note)
		}
		return
	}

	client := &http.Client{}
	saved, skipped := 0, 0
	for _, c := range file.Calibrations {
		name := strings.TrimSpace(c.Name)
		if name == "" || math.IsNaN(c.BiasCorrection) || math.IsInf(c.BiasCorrection, 0) {
			log.Printf("skip %q: invalid profile", c.Name)
			skipped++
			continue
		}

		body, _ := json.Marshal(putRequest{BiasCorrection: c.BiasCorrection, Note: c.Note})
		req, err := http.NewRequest(http.MethodPut, *apiURL+"/api/v1/calibrations/"+url.PathEscape(name), bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", name, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", name, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			saved++
		} else {
			log.Printf("skip %q: status %d", name, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d saved, %d skipped", saved, skipped)
}
