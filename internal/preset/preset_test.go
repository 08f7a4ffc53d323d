package preset

import (
	"errors"
	"reflect"
	"testing"

	"texture-packer/internal/config"
)

func TestLoad_Plans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outputs []string
	}{
		{"orm", []string{"_albedo", "_orm", "_normal"}},
		{"ORD", []string{"_albedo", "_ord", "_normal"}},
		{"Unity", []string{"_albedo", "_metallic", "_normal"}},
		{"unreal", []string{"_albedo", "_orm", "_normal", "_height"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, plan, err := Load(tt.name)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.name, err)
			}
			var got []string
			for _, e := range plan {
				got = append(got, e.Suffix)
			}
			if !reflect.DeepEqual(got, tt.outputs) {
				t.Errorf("Load(%q) outputs = %v, want %v", tt.name, got, tt.outputs)
			}
			for _, alias := range []string{"_basecolor", "_diffuse", "_occlusion", "_disp", "_d", "_n", "_r", "_o", "_m", "_a", "_e", "_s"} {
				if _, ok := m[alias]; !ok {
					t.Errorf("Load(%q) suffix map lacks %s", tt.name, alias)
				}
			}
		})
	}
}

func TestLoad_Channels(t *testing.T) {
	t.Parallel()

	_, plan, err := Load(Unity)
	if err != nil {
		t.Fatal(err)
	}
	items, _ := plan.Lookup("_metallic")
	want := []config.PackItem{
		config.Item("_metallic", 0),
		config.Item("_ao", 0),
		config.Item("_height", 0),
		config.Inverted("_roughness", 0),
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("unity _metallic = %+v, want %+v", items, want)
	}

	_, plan, _ = Load(ORM)
	normal, _ := plan.Lookup("_normal")
	if !normal[1].Invert || normal[0].Invert || normal[2].Invert {
		t.Errorf("orm _normal = %+v, want only green inverted", normal)
	}

	_, plan, _ = Load(Unreal)
	normal, _ = plan.Lookup("_normal")
	for _, it := range normal {
		if it.Invert {
			t.Errorf("unreal _normal = %+v, want no inversion", normal)
		}
	}
}

func TestLoad_AliasTargets(t *testing.T) {
	t.Parallel()

	m, _, _ := Load(ORM)
	tests := map[string]string{
		"_basecolor": "_albedo",
		"_occlusion": "_ao",
		"_disp":      "_height",
		"_n":         "_normal",
		"_s":         "_specular",
		"_albedo":    "_albedo",
	}
	for in, want := range tests {
		if got := m.Canonical(in); got != want {
			t.Errorf("Canonical(%s) = %s, want %s", in, got, want)
		}
	}

	unity, _, _ := Load(Unity)
	if _, ok := unity["_smoothness"]; !ok {
		t.Error("unity preset lacks _smoothness")
	}
	if _, ok := m["_smoothness"]; ok {
		t.Error("orm preset must not carry the unity-only _smoothness suffix")
	}
}

func TestLoad_Unknown(t *testing.T) {
	t.Parallel()

	if _, _, err := Load("godot"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Load(godot) error = %v, want ErrUnknownPreset", err)
	}
}

func TestApply_UnknownLeavesConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	got, err := Apply(cfg, "nope")
	if err == nil {
		t.Fatal("Apply(nope) error = nil")
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Error("Apply with an unknown preset changed the config")
	}

	got, err = Apply(cfg, ORD)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.Plan.Lookup("_ord"); !ok {
		t.Error("Apply(ord) plan lacks _ord")
	}
}
