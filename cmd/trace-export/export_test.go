package main

import "testing"

func TestDefaultOutDir(t *testing.T) {
	cases := map[string]string{
		"trace.zip":            "trace-export",
		"/tmp/my-run.zip":      "my-run-export",
		"archive":              "archive-export",
	}
	for in, want := range cases {
		if got := defaultOutDir(in); got != want {
			t.Fatalf("defaultOutDir(%q) = %q, want %q", in, got, want)
		}
	}
}
