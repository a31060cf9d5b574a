package fonts

import "testing"

func TestFindExactMatch(t *testing.T) {
	f, ok := Find("Roboto")
	if !ok {
		t.Fatal("expected Roboto to be in the catalog")
	}
	if f.Family != "Roboto" {
		t.Errorf("expected family=Roboto, got %s", f.Family)
	}
	if f.PostScriptName != "Roboto-Regular" {
		t.Errorf("expected postScriptName=Roboto-Regular, got %s", f.PostScriptName)
	}
	if f.URL == "" {
		t.Error("expected a non-empty font URL")
	}
}

func TestFindIsCaseSensitive(t *testing.T) {
	if _, ok := Find("roboto"); ok {
		t.Error("expected lowercase 'roboto' to miss")
	}
	if _, ok := Find("ROBOTO"); ok {
		t.Error("expected uppercase 'ROBOTO' to miss")
	}
}

func TestFindUnregisteredFamily(t *testing.T) {
	if _, ok := Find("Comic Papyrus"); ok {
		t.Error("expected unregistered family to miss")
	}
}

func TestCatalogHasNoDuplicateFamilies(t *testing.T) {
	if len(Families()) != len(catalog) {
		t.Errorf("catalog has duplicate family names: %d entries, %d unique",
			len(catalog), len(Families()))
	}
}
