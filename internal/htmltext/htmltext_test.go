package htmltext

import "testing"

func TestToText(t *testing.T) {
	in := `<html><head><title>x</title><style>p{}</style></head><body>
<h2>Call summary</h2>
<p>Room 301: guest   requests the following.</p>
<ul><li>2 club sandwiches</li><li>a <b>taxi</b> to the airport</li></ul>
<p>Special instructions: no onions<br>Thanks</p>
<script>alert(1)</script>
</body></html>`
	want := "Call summary\n" +
		"Room 301: guest requests the following.\n" +
		"- 2 club sandwiches\n" +
		"- a taxi to the airport\n" +
		"Special instructions: no onions\n" +
		"Thanks"
	if got := ToText(in); got != want {
		t.Errorf("ToText:\n got %q\nwant %q", got, want)
	}
}

func TestToTextPlain(t *testing.T) {
	if got := ToText("  just   text "); got != "just text" {
		t.Errorf("ToText(plain) = %q", got)
	}
	if got := ToText(""); got != "" {
		t.Errorf("ToText(empty) = %q", got)
	}
}

func TestToTextEntities(t *testing.T) {
	if got := ToText("<p>Caf&eacute; &amp; tea</p>"); got != "Café & tea" {
		t.Errorf("ToText(entities) = %q", got)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	cases := map[string]bool{
		"<p>hi</p>":       true,
		"a < b and c > d": true,
		"no markup":       false,
		"5 > 3":           false,
		"broken <tag":     false,
	}
	for in, want := range cases {
		if got := LooksLikeHTML(in); got != want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", in, got, want)
		}
	}
}
