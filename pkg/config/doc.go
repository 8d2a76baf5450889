// Package config loads, validates, edits and persists hop's rule
// configuration.
//
// A configuration is an ordered list of projects, each holding an ordered
// list of rules:
//
//	projects:
//	  - name: web
//	    rules:
//	      - rule: git
//	        path: ["%.ts", "%Test.ts"]
//	        postfix: Test
//
// The file is read at the start of every request and rewritten as a whole
// on every save.
package config
