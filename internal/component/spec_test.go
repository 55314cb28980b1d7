package component

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }
func boolp(b bool) *bool    { return &b }

func TestCPUAttributesSkipAbsentAndKeepOrder(t *testing.T) {
	spec := &CPUSpec{
		Brand:          strp("Intel"),
		Cores:          intp(8),
		Multithreading: boolp(true),
		Socket:         strp("LGA1700"),
	}

	got := spec.Attributes()
	require.Equal(t, Attrs{
		{"Brand", "Intel"},
		{"Cores", "8"},
		{"Multithreading", "Yes"},
		{"Socket", "LGA1700"},
	}, got)

	// absent fields must not appear at all
	_, ok := got.Get("Frequency")
	require.False(t, ok)
	_, ok = got.Get("Max RAM")
	require.False(t, ok)
}

func TestAttributesOrderStableAcrossCalls(t *testing.T) {
	spec := &CPUSpec{
		Brand:          strp("AMD"),
		Cores:          intp(16),
		Threads:        intp(32),
		Frequency:      intp(4500),
		Multithreading: boolp(true),
		Socket:         strp("AM5"),
		MaxRAM:         intp(128),
	}
	require.Equal(t, spec.Attributes(), spec.Attributes())
}

func TestUnitSuffixes(t *testing.T) {
	gpu := &GPUSpec{
		Memory:     intp(24),
		CoreClock:  intp(2235),
		Length:     intp(336),
		Power:      intp(450),
		RayTracing: boolp(false),
	}
	got := gpu.Attributes()

	mem, _ := got.Get("Memory")
	require.Equal(t, "24 GB", mem)
	clk, _ := got.Get("Core Clock")
	require.Equal(t, "2235 MHz", clk)
	length, _ := got.Get("Length")
	require.Equal(t, "336 mm", length)
	pow, _ := got.Get("Power")
	require.Equal(t, "450 W", pow)
	rt, _ := got.Get("Ray Tracing")
	require.Equal(t, "No", rt)

	mon := &MonitorSpec{RefreshRate: intp(165), ViewingAngle: intp(178)}
	hz, _ := mon.Attributes().Get("Refresh Rate")
	require.Equal(t, "165 Hz", hz)
	deg, _ := mon.Attributes().Get("Viewing Angle")
	require.Equal(t, "178°", deg)

	cam := &CameraSpec{FrameRate: intp(60)}
	fps, _ := cam.Attributes().Get("Frame Rate")
	require.Equal(t, "60 fps", fps)

	hp := &HeadphonesSpec{BatteryLife: intp(30), Sensitivity: intp(102)}
	hours, _ := hp.Attributes().Get("Battery Life")
	require.Equal(t, "30 hours", hours)
	db, _ := hp.Attributes().Get("Sensitivity")
	require.Equal(t, "102 dB", db)
}

func TestAttrsMarshalPreservesOrder(t *testing.T) {
	a := Attrs{
		{"Brand", "Corsair"},
		{"Power", "850 W"},
		{"Modular", "Yes"},
	}
	out, err := json.Marshal(a)
	require.NoError(t, err)
	require.JSONEq(t, `{"Brand":"Corsair","Power":"850 W","Modular":"Yes"}`, string(out))
	// key order is part of the contract, not just set equality
	require.Equal(t, `{"Brand":"Corsair","Power":"850 W","Modular":"Yes"}`, string(out))
}

func TestDecodeSpec(t *testing.T) {
	raw := []byte(`{"brand":"Noctua","type":"Air","fanSize":140,"rgb":false}`)
	s, err := DecodeSpec(KindCooling, raw)
	require.NoError(t, err)
	require.Equal(t, KindCooling, s.Kind())

	got := s.Attributes()
	require.Equal(t, Attrs{
		{"Brand", "Noctua"},
		{"Type", "Air"},
		{"Fan Size", "140 mm"},
		{"RGB", "No"},
	}, got)
}

func TestDecodeSpecEmptyAndUnknown(t *testing.T) {
	s, err := DecodeSpec(KindCPU, nil)
	require.NoError(t, err)
	require.Nil(t, s)

	s, err = DecodeSpec(KindCPU, []byte("null"))
	require.NoError(t, err)
	require.Nil(t, s)

	_, err = DecodeSpec(Kind("toaster"), []byte(`{}`))
	require.Error(t, err)
}

func TestComponentWithoutSpecHasEmptyAttributes(t *testing.T) {
	c := &Component{ID: "x", Name: "Mystery item"}
	require.Empty(t, c.Attributes())
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("component")
	require.NoError(t, err)
	require.Equal(t, FamilyComponent, f)

	f, err = ParseFamily("peripheral")
	require.NoError(t, err)
	require.Equal(t, FamilyPeripheral, f)

	// unknown discriminators are integrity errors, never a silent default
	_, err = ParseFamily("accessory")
	require.Error(t, err)
	_, err = ParseFamily("")
	require.Error(t, err)
}
