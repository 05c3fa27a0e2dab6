// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCore [3]uint64
		wantPre  []string
		wantMeta string
		wantPfx  string
	}{
		{name: "plain", input: "1.2.3", wantCore: [3]uint64{1, 2, 3}},
		{name: "lower prefix", input: "v1.2.3", wantCore: [3]uint64{1, 2, 3}, wantPfx: "v"},
		{name: "upper prefix", input: "V1.2.3", wantCore: [3]uint64{1, 2, 3}, wantPfx: "V"},
		{name: "zeros", input: "0.0.0", wantCore: [3]uint64{0, 0, 0}},
		{name: "prerelease", input: "1.0.0-alpha", wantCore: [3]uint64{1, 0, 0}, wantPre: []string{"alpha"}},
		{name: "prerelease counter", input: "1.0.0-alpha.1", wantCore: [3]uint64{1, 0, 0}, wantPre: []string{"alpha", "1"}},
		{name: "numeric prerelease", input: "1.0.0-0.3.7", wantCore: [3]uint64{1, 0, 0}, wantPre: []string{"0", "3", "7"}},
		{name: "mixed prerelease", input: "1.0.0-x.7.z.92", wantCore: [3]uint64{1, 0, 0}, wantPre: []string{"x", "7", "z", "92"}},
		{name: "hyphen identifiers", input: "1.0.0-x-y-z.--", wantCore: [3]uint64{1, 0, 0}, wantPre: []string{"x-y-z", "--"}},
		{name: "metadata only", input: "1.0.0+20130313144700", wantCore: [3]uint64{1, 0, 0}, wantMeta: "20130313144700"},
		{name: "prerelease and metadata", input: "1.0.0-beta+exp.sha.5114f85", wantCore: [3]uint64{1, 0, 0}, wantPre: []string{"beta"}, wantMeta: "exp.sha.5114f85"},
		{name: "metadata with hyphens", input: "1.0.0+21AF26D3----117B344092BD", wantCore: [3]uint64{1, 0, 0}, wantMeta: "21AF26D3----117B344092BD"},
		{name: "metadata leading zeros", input: "1.0.0+0.build.1-rc.10000aaa-kk-0.1", wantCore: [3]uint64{1, 0, 0}, wantMeta: "0.build.1-rc.10000aaa-kk-0.1"},
		{
			name:     "dashes inside identifiers",
			input:    "1.2.3----RC-SNAPSHOT.12.9.1--.12+788",
			wantCore: [3]uint64{1, 2, 3},
			wantPre:  []string{"---RC-SNAPSHOT", "12", "9", "1--", "12"},
			wantMeta: "788",
		},
		{name: "huge numeric identifier", input: "1.0.0-alpha.99999999999999999999999", wantCore: [3]uint64{1, 0, 0}, wantPre: []string{"alpha", "99999999999999999999999"}},
		{name: "max uint64", input: "18446744073709551615.0.0", wantCore: [3]uint64{18446744073709551615, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got := [3]uint64{v.Major, v.Minor, v.Patch}; got != tt.wantCore {
				t.Errorf("core = %v, want %v", got, tt.wantCore)
			}
			gotPre := v.Identifiers()
			if len(tt.wantPre) == 0 {
				if len(gotPre) != 0 {
					t.Errorf("prerelease = %v, want none", gotPre)
				}
			} else if !reflect.DeepEqual(gotPre, tt.wantPre) {
				t.Errorf("prerelease = %v, want %v", gotPre, tt.wantPre)
			}
			if v.Metadata != tt.wantMeta {
				t.Errorf("metadata = %q, want %q", v.Metadata, tt.wantMeta)
			}
			if v.Prefix != tt.wantPfx {
				t.Errorf("prefix = %q, want %q", v.Prefix, tt.wantPfx)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "empty", input: "", want: ErrEmpty},
		{name: "too long", input: "1.2.3-" + strings.Repeat("a", MaxLength), want: ErrTooLong},
		{name: "leading space", input: " 1.2.3", want: ErrWhitespace},
		{name: "trailing space", input: "1.2.3 ", want: ErrWhitespace},
		{name: "trailing newline", input: "1.2.3\n", want: ErrWhitespace},
		{name: "double prefix", input: "vv1.2.3", want: ErrMultiplePrefix},
		{name: "mixed double prefix", input: "vV1.2.3", want: ErrMultiplePrefix},
		{name: "prefix only", input: "v", want: ErrMissingComponent},
		{name: "missing patch", input: "1.2", want: ErrMissingComponent},
		{name: "empty minor", input: "1..3", want: ErrMissingComponent},
		{name: "negative looking", input: "-1.2.3", want: ErrMissingComponent},
		{name: "empty patch before dash", input: "1.2.-3", want: ErrMissingComponent},
		{name: "too many components", input: "1.2.3.4", want: ErrTooManyComponents},
		{name: "non numeric", input: "a.b.c", want: ErrNonNumeric},
		{name: "leading zero major", input: "01.2.3", want: ErrLeadingZero},
		{name: "leading zero minor", input: "1.02.3", want: ErrLeadingZero},
		{name: "leading zero patch", input: "1.2.03", want: ErrLeadingZero},
		{name: "leading zero prerelease", input: "1.2.3-01", want: ErrLeadingZero},
		{name: "double zero prerelease", input: "1.2.3-rc.00", want: ErrLeadingZero},
		{name: "empty prerelease", input: "1.2.3-", want: ErrInvalidIdentifier},
		{name: "empty prerelease identifier", input: "1.2.3-alpha..1", want: ErrInvalidIdentifier},
		{name: "underscore identifier", input: "1.2.3-alpha_1", want: ErrInvalidIdentifier},
		{name: "empty metadata", input: "1.2.3+", want: ErrInvalidIdentifier},
		{name: "empty metadata segment", input: "1.2.3+meta..x", want: ErrInvalidIdentifier},
		{name: "second plus", input: "1.2.3-alpha+beta+gamma", want: ErrInvalidIdentifier},
		{name: "core overflow", input: "99999999999999999999999.0.0", want: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", tt.input)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want cause %v", tt.input, err, tt.want)
			}
			if pe.Reason == "" {
				t.Errorf("Parse(%q) error has no reason", tt.input)
			}
		})
	}
}

func TestParseErrorTruncatesInput(t *testing.T) {
	_, err := Parse(strings.Repeat("9", MaxLength+1))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if len(pe.Input) > maxErrorInput+3 {
		t.Errorf("error input length = %d, want at most %d", len(pe.Input), maxErrorInput+3)
	}
}

func TestParseIdentifierClassification(t *testing.T) {
	tests := []struct {
		input   string
		numeric bool
	}{
		{"0", true},
		{"7", true},
		{"92", true},
		{"0a", false},
		{"alpha", false},
		{"1--", false},
		{"-", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseIdentifier(tt.input)
			if err != nil {
				t.Fatalf("ParseIdentifier(%q) unexpected error: %v", tt.input, err)
			}
			if id.Numeric != tt.numeric {
				t.Errorf("ParseIdentifier(%q).Numeric = %v, want %v", tt.input, id.Numeric, tt.numeric)
			}
		})
	}
}

func TestMustParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v := MustParse("v1.2.3")
		if v.Major != 1 || v.Minor != 2 || v.Patch != 3 {
			t.Errorf("MustParse(v1.2.3) = %+v", v)
		}
	})

	t.Run("invalid panics", func(t *testing.T) {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("MustParse did not panic")
			}
			if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "MustParse:") {
				t.Errorf("panic = %v, want MustParse: prefix", r)
			}
		}()
		MustParse("1.2")
	})
}

func TestIsValid(t *testing.T) {
	if !IsValid("v1.0.0-rc.1+build") {
		t.Error("IsValid(v1.0.0-rc.1+build) = false, want true")
	}
	if IsValid("1.0") {
		t.Error("IsValid(1.0) = true, want false")
	}
}

func TestDetails(t *testing.T) {
	d := MustParse("v1.2.3-alpha.1.beta.22+build.5").Details()
	if d.Version != "v1.2.3-alpha.1.beta.22+build.5" {
		t.Errorf("Version = %q", d.Version)
	}
	if d.Prefix != "v" || d.Major != 1 || d.Minor != 2 || d.Patch != 3 {
		t.Errorf("unexpected core details: %+v", d)
	}
	if !d.IsPrerelease {
		t.Error("IsPrerelease = false, want true")
	}
	if want := []string{"alpha", "1", "beta", "22"}; !reflect.DeepEqual(d.Prerelease, want) {
		t.Errorf("Prerelease = %v, want %v", d.Prerelease, want)
	}
	if want := []string{"1", "22"}; !reflect.DeepEqual(d.NumericIdentifiers, want) {
		t.Errorf("NumericIdentifiers = %v, want %v", d.NumericIdentifiers, want)
	}
	if d.Metadata != "build.5" {
		t.Errorf("Metadata = %q, want build.5", d.Metadata)
	}
}

func TestVersionJSON(t *testing.T) {
	v := MustParse("v1.0.0-rc.1")
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"major":1,"minor":0,"patch":0,"prerelease":["rc","1"],"prefix":"v"}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}

	var got Version
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(got, v) {
		t.Errorf("Unmarshal = %+v, want %+v", got, v)
	}
	if !got.Prerelease[1].Numeric {
		t.Error("numeric identifier lost its classification")
	}

	if err := json.Unmarshal([]byte(`{"major":1,"prerelease":["01"]}`), &got); err == nil {
		t.Error("expected error for leading zero identifier")
	}
}
