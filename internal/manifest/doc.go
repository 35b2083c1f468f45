// Package manifest reads deck manifests and builds the decks they describe.
//
// A manifest is a YAML file naming a spreadsheet and a presentation, the
// local CSV or XLSX files uploaded as frames, the charts and tables built on
// them and the slides those objects are placed on:
//
//	spreadsheet:
//	  title: Sales
//	presentation:
//	  title: Sales review
//	data:
//	  - name: monthly
//	    csv: monthly.csv
//	charts:
//	  - name: revenue
//	    data: monthly
//	    x: month
//	    series:
//	      - type: column
//	        columns: [revenue]
//	slides:
//	  - title: Revenue
//	    objects: [revenue]
//
// Relative file paths are resolved against the manifest's directory.
package manifest
