// Package chart builds Google Sheets charts over frame columns.
//
// A chart is described by one or more Series (Line, Area, Column, Scatter
// or Histogram) and chart level Options. Series options are validated when
// the series is built; New checks that the series can be combined and
// derives the chart type. Create renders the addChart request, sends it and
// keeps the id of the new chart so it can be linked into a slide.
//
// Columns are assigned to series in order: a series without explicit
// columns claims every column except the x axis column, and a later series
// claiming a column replaces the earlier one.
package chart
