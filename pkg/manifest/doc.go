// Package manifest loads route tables into a router.Collection.
//
// A manifest lists routes in registration order, which matters for
// tie-breaking, and may override the not-found pattern and tie-break
// policy:
//
//	notFound: /404
//	tieBreak: specificity
//	routes:
//	  - pattern: /
//	    target: default-index-view
//	    meta:
//	      title: Home
//	  - pattern: /404
//	    target: default-not-found-view
//	  - pattern: /dynamic/:firstValue/example/:secondValue
//	    target: dynamic-example-view
//	    protected: true
//
// Manifests are read from YAML or JSON files, or from S3 with an
// "s3://bucket/key" source.
package manifest
