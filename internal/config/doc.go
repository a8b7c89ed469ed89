// Package config provides configuration parsing for outlet hosts and the
// outlet CLI.
//
// The configuration is stored in outlet.json or outlet.yaml next to the
// route manifest. This package handles loading, saving, and validating
// configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "storefront",
//	  "routes": "routes.yaml",
//	  "notFound": "/404",
//	  "tieBreak": "specificity",
//	  "server": {
//	    "addr": ":3000"
//	  },
//	  "metrics": {
//	    "namespace": "outlet"
//	  },
//	  "tracing": {
//	    "tracerName": "outlet"
//	  },
//	  "s3": {
//	    "region": "eu-west-1"
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// routes may also name an S3 object: "s3://bucket/site/routes.yaml".
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Server.Addr)
package config
