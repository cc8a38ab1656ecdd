package metadata_test

import (
	"strings"
	"testing"

	"chartsmith/internal/metadata"
)

func TestSetINIValueReplacesExistingKey(t *testing.T) {
	in := "[song]\nName  =  Old Title\ndelay = 0\n"
	got := metadata.SetINIValue(in, "name", "New Title")
	want := "[song]\nName  = New Title\ndelay = 0\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetINIValueInsertsUnderHeader(t *testing.T) {
	in := "[Song]\nname = T\ndelay = 0\n"
	got := metadata.SetINIValue(in, "artist", "A")
	want := "[Song]\nartist = A\nname = T\ndelay = 0\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetINIValueAppendsWithoutHeader(t *testing.T) {
	if got := metadata.SetINIValue("delay = 0", "name", "T"); got != "delay = 0\nname = T\n" {
		t.Fatalf("got %q", got)
	}
	if got := metadata.SetINIValue("delay = 0\n", "name", "T"); got != "delay = 0\nname = T\n" {
		t.Fatalf("got %q", got)
	}
	if got := metadata.SetINIValue("", "name", "T"); got != "name = T\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSetINIValuePreservesCRLF(t *testing.T) {
	in := "[song]\r\nname = Old\r\ncharter = me\r\n"
	got := metadata.SetINIValue(in, "name", "New")
	got = metadata.SetINIValue(got, "artist", "A")
	want := "[song]\r\nartist = A\r\nname = New\r\ncharter = me\r\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetINIValueEmptyValueIsNoop(t *testing.T) {
	in := "[song]\nname = Keep\n"
	if got := metadata.SetINIValue(in, "name", ""); got != in {
		t.Fatalf("got %q", got)
	}
}

func TestSetINIValueDoesNotMatchLongerKeys(t *testing.T) {
	in := "[song]\nartist_url = x\n"
	got := metadata.SetINIValue(in, "artist", "A")
	if !strings.Contains(got, "artist_url = x\n") || !strings.Contains(got, "artist = A\n") {
		t.Fatalf("got %q", got)
	}
}

func TestSetINIValueIsIdempotent(t *testing.T) {
	in := "[song]\nname = Old\nloading_phrase = hi\n"
	once := metadata.SetINIValue(metadata.SetINIValue(in, "name", "T"), "artist", "A")
	twice := metadata.SetINIValue(metadata.SetINIValue(once, "name", "T"), "artist", "A")
	if once != twice {
		t.Fatalf("not idempotent:\n%q\n%q", once, twice)
	}
	if strings.Count(twice, "artist =") != 1 || strings.Count(twice, "name =") != 1 {
		t.Fatalf("duplicate keys: %q", twice)
	}
}
