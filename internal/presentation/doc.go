// Package presentation creates Google Slides presentations and builds slides
// holding linked Sheets charts and tables.
//
// A slide is built in two phases. ExecuteSheet creates the charts in their
// spreadsheets, sized to the slide grid. ExecuteSlide then creates the slide
// with a title and a notes box and places every chart and table into the
// next grid cell.
package presentation
