// Package config loads and validates examples2pdf YAML configuration.
//
// A config file is optional. Every field left empty falls back to the
// defaults that reproduce the tikzircuit documentation build:
//
//	input:
//	  file: tikzircuit.tex
//	document:
//	  class: scrartcl
//	  classOptions: [parskip=full]
//	  intro: introExamples
//	compiler:
//	  preset: rubber
//
// Precedence, highest first: CLI flags, EXAMPLES2PDF_* environment
// variables, config file, library defaults.
package config
