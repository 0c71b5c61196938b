package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectEventLookupArgs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "bare event id",
			in:   []string{"lifeline", "ev-abc12345"},
			want: []string{"lifeline", "events", "show", "ev-abc12345"},
		},
		{
			name: "flags before id",
			in:   []string{"lifeline", "--dir", "/tmp/x", "ev-abc12345"},
			want: []string{"lifeline", "--dir", "/tmp/x", "events", "show", "ev-abc12345"},
		},
		{
			name: "bool flag before id",
			in:   []string{"lifeline", "--pretty", "ev-abc12345"},
			want: []string{"lifeline", "--pretty", "events", "show", "ev-abc12345"},
		},
		{
			name: "double dash",
			in:   []string{"lifeline", "--", "ev-abc12345"},
			want: []string{"lifeline", "--", "events", "show", "ev-abc12345"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"lifeline", "events", "list"},
			want: []string{"lifeline", "events", "list"},
		},
		{
			name: "non-event positional untouched",
			in:   []string{"lifeline", "cat-abc12345"},
			want: []string{"lifeline", "cat-abc12345"},
		},
		{
			name: "bare prefix untouched",
			in:   []string{"lifeline", "ev-"},
			want: []string{"lifeline", "ev-"},
		},
		{
			name: "no args",
			in:   []string{"lifeline"},
			want: []string{"lifeline"},
		},
	}

	for _, tc := range cases {
		if got := rewriteDirectEventLookupArgs(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
