package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
)

func main() {
	dataPath := flag.String("data", "data/catalog.json", "catalog JSON file to serve")
	addr := flag.String("addr", ":9000", "listen address")
	flag.Parse()

	// serves the catalog document at GET /catalog
	http.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(*dataPath)
		if err != nil {
			http.Error(w, "cannot read catalog: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// validate JSON so a bad file doesn't silently break clients
		var tmp any
		if err := json.Unmarshal(b, &tmp); err != nil {
			http.Error(w, "catalog invalid JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	log.Printf("catalog-server listening on %s, serving %s", *addr, *dataPath)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
