package config_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/serieskit/pkg/config"
)

// ExampleDefault demonstrates the default configuration.
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Missing token: %s\n", cfg.MissingToken)
	fmt.Printf("Delimiter: %s\n", cfg.Ingest.Delimiter)
	fmt.Printf("Export: %s/%s\n", cfg.Export.Format, cfg.Export.Compression)

	// Output:
	// Missing token: ?
	// Delimiter: ,
	// Export: json/none
}

// ExampleConfig_Validate shows how to validate a configuration
// before using it.
func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Ingest.Types = map[string]string{"price": "double"}
	cfg.Export.Format = "arrow"
	cfg.Export.Compression = "zstd"

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration is valid!")

	cfg.Export.Compression = "brotli"
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid!
	// config: unknown export.compression "brotli"
}

// ExampleConfig_NewRand shows that a fixed seed gives reproducible draws.
func ExampleConfig_NewRand() {
	cfg := config.Default()
	cfg.Seed = 7

	a := cfg.NewRand().Perm(5)
	b := cfg.NewRand().Perm(5)
	fmt.Println(fmt.Sprint(a) == fmt.Sprint(b))

	// Output:
	// true
}
