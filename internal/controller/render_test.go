package controller

import "testing"

func TestComputePageInfo(t *testing.T) {
	tests := []struct {
		page, total int
		label       string
		pages       int
		prev, next  bool
	}{
		{0, 0, "No items", 0, true, true},
		{0, 7, "1–7 of 7", 1, true, true},
		{0, 10, "1–10 of 10", 1, true, true},
		{0, 23, "1–10 of 23", 3, true, false},
		{1, 23, "11–20 of 23", 3, false, false},
		{2, 23, "21–23 of 23", 3, false, true},
	}

	for _, tt := range tests {
		info := computePageInfo(tt.page, tt.total)
		if info.Label != tt.label || info.TotalPages != tt.pages || info.PrevDisabled != tt.prev || info.NextDisabled != tt.next {
			t.Errorf("page=%d total=%d: got %+v", tt.page, tt.total, info)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"9.99", ptr(9.99)},
		{"  12 ", ptr(12)},
		{"12.5kg", ptr(12.5)},
		{".5", ptr(0.5)},
		{"-3", ptr(-3)},
		{"1e3", ptr(1000)},
		{"5.", ptr(5)},
		{"", nil},
		{"abc", nil},
		{"$5", nil},
		{"1e999", nil},
	}

	for _, tt := range tests {
		got := ParsePrice(tt.in)
		switch {
		case got == nil && tt.want == nil:
		case got == nil || tt.want == nil:
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		case *got != *tt.want:
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, *got, *tt.want)
		}
	}
}

func TestFormPayload(t *testing.T) {
	f := Form{Name: " Lamp ", Description: "  desk lamp ", Price: "19.5", Active: false}
	p := f.Payload()

	if p.Name != "Lamp" || p.Description == nil || *p.Description != "desk lamp" || *p.Price != 19.5 || p.IsActive {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func ptr(f float64) *float64 {
	return &f
}
