package emails

import (
	"strings"
	"testing"
)

func TestRenderReceipt(t *testing.T) {
	html, err := renderReceipt(ReceiptData{
		FullName: "Ada Lovelace",
		Date:     "2026-08-30",
		CheckIn:  "8:02 AM",
		CheckOut: "5:14 PM",
		Duration: "9h12m0s",
	})
	if err != nil {
		t.Fatalf("rendering failed: %v", err)
	}
	for _, want := range []string{"Ada Lovelace", "2026-08-30", "8:02 AM", "5:14 PM", "9h12m0s"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered receipt is missing %q", want)
		}
	}
}

func TestRenderReceiptEscapesMarkup(t *testing.T) {
	html, err := renderReceipt(ReceiptData{
		FullName: `<script>alert("x")</script>`,
		Date:     "2026-08-30",
	})
	if err != nil {
		t.Fatalf("rendering failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("template did not escape markup in the full name")
	}
}
