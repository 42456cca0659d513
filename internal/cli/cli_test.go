package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	want := map[string]bool{"serve": false, "migrate": false, "seed": false, "match": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
	if root.RunE == nil {
		t.Fatalf("root command should default to serve")
	}
	if root.Flags().Lookup("migrate") == nil {
		t.Fatalf("root command should accept serve flags")
	}
}

func TestMatchOptions_Validate(t *testing.T) {
	cases := []struct {
		name string
		opts matchOptions
		ok   bool
	}{
		{"jobseeker", matchOptions{jobseekerID: 3}, true},
		{"job", matchOptions{jobID: 9}, true},
		{"neither", matchOptions{}, false},
		{"both", matchOptions{jobseekerID: 3, jobID: 9}, false},
	}
	for _, tc := range cases {
		if err := tc.opts.validate(); (err == nil) != tc.ok {
			t.Fatalf("%s: unexpected result %v", tc.name, err)
		}
	}
}

func TestMatchCommand_RejectsMissingTarget(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"match"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "--jobseeker") {
		t.Fatalf("expected validation error before loading config, got %v", err)
	}
}
