// Package component holds the catalog side of the shop: categories, the
// component rows and their category-specific spec sub-records.
package component

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which spec sub-record a component carries. Kinds mirror the
// category slugs, so the category row alone decides how the raw spec JSON is
// decoded.
type Kind string

const (
	KindCPU         Kind = "cpu"
	KindGPU         Kind = "gpu"
	KindRAM         Kind = "ram"
	KindStorage     Kind = "storage"
	KindPSU         Kind = "psu"
	KindMotherboard Kind = "motherboard"
	KindCooling     Kind = "cooling"
	KindCase        Kind = "case"
	KindKeyboard    Kind = "keyboard"
	KindMouse       Kind = "mouse"
	KindMousePad    Kind = "mousepad"
	KindMonitor     Kind = "monitor"
	KindHeadphones  Kind = "headphones"
	KindMicrophone  Kind = "microphone"
	KindCamera      Kind = "camera"
	KindSpeakers    Kind = "speakers"
	KindGamepad     Kind = "gamepad"
)

// Spec is the sub-record of exactly one catalog kind. A component either has
// one Spec or none; having it be a single interface value (instead of
// seventeen nullable struct fields) makes "at most one populated" true by
// construction.
type Spec interface {
	Kind() Kind
	// Attributes renders the display specification list. Field order is fixed
	// per kind and identical across calls: brand first, then the sizing and
	// spec fields, then capability flags. Nil source fields are skipped.
	Attributes() Attrs
}

// Attr is one display attribute of a component.
type Attr struct {
	Label string
	Value string
}

// Attrs is an ordered attribute list. It marshals as a JSON object whose
// keys keep insertion order, which the storefront relies on for display.
type Attrs []Attr

func (a Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, at := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(at.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(at.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Attrs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specifications: expected object, got %v", tok)
	}
	var out Attrs
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("specifications: bad key %v", kt)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return err
		}
		out = append(out, Attr{key, val})
	}
	*a = out
	return nil
}

// Get returns the value for a label, if present.
func (a Attrs) Get(label string) (string, bool) {
	for _, at := range a {
		if at.Label == label {
			return at.Value, true
		}
	}
	return "", false
}

// attrs accumulates label/value pairs, skipping nil sources.
type attrs struct{ out Attrs }

func (b *attrs) str(label string, v *string) {
	if v != nil && *v != "" {
		b.out = append(b.out, Attr{label, *v})
	}
}

// num appends an integer with its literal unit suffix ("16 GB", "850 W").
// The degree sign is attached without a space ("178°"). Unit "" emits the
// bare number.
func (b *attrs) num(label string, v *int, unit string) {
	if v == nil {
		return
	}
	s := strconv.Itoa(*v)
	switch unit {
	case "":
	case "°":
		s += unit
	default:
		s += " " + unit
	}
	b.out = append(b.out, Attr{label, s})
}

func (b *attrs) flag(label string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		b.out = append(b.out, Attr{label, "Yes"})
	} else {
		b.out = append(b.out, Attr{label, "No"})
	}
}

// ---- internal components ----

type CPUSpec struct {
	Brand          *string `json:"brand"`
	Cores          *int    `json:"cores"`
	Threads        *int    `json:"threads"`
	Frequency      *int    `json:"frequency"` // MHz
	Multithreading *bool   `json:"multithreading"`
	Socket         *string `json:"socket"`
	MaxRAM         *int    `json:"maxRam"` // GB
	Graphics       *bool   `json:"integratedGraphics"`
}

func (s *CPUSpec) Kind() Kind { return KindCPU }

func (s *CPUSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.num("Cores", s.Cores, "")
	b.num("Threads", s.Threads, "")
	b.num("Frequency", s.Frequency, "MHz")
	b.flag("Multithreading", s.Multithreading)
	b.str("Socket", s.Socket)
	b.num("Max RAM", s.MaxRAM, "GB")
	b.flag("Integrated Graphics", s.Graphics)
	return b.out
}

type GPUSpec struct {
	Brand      *string `json:"brand"`
	Memory     *int    `json:"memory"` // GB
	MemoryType *string `json:"memoryType"`
	CoreClock  *int    `json:"coreClock"`  // MHz
	BoostClock *int    `json:"boostClock"` // MHz
	Length     *int    `json:"length"`     // mm
	Power      *int    `json:"power"`      // W
	RayTracing *bool   `json:"rayTracing"`
}

func (s *GPUSpec) Kind() Kind { return KindGPU }

func (s *GPUSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.num("Memory", s.Memory, "GB")
	b.str("Memory Type", s.MemoryType)
	b.num("Core Clock", s.CoreClock, "MHz")
	b.num("Boost Clock", s.BoostClock, "MHz")
	b.num("Length", s.Length, "mm")
	b.num("Power", s.Power, "W")
	b.flag("Ray Tracing", s.RayTracing)
	return b.out
}

type RAMSpec struct {
	Brand     *string `json:"brand"`
	Capacity  *int    `json:"capacity"`  // GB
	Frequency *int    `json:"frequency"` // MHz
	Type      *string `json:"type"`
	Modules   *int    `json:"modules"`
	Latency   *string `json:"latency"`
	RGB       *bool   `json:"rgb"`
}

func (s *RAMSpec) Kind() Kind { return KindRAM }

func (s *RAMSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.num("Capacity", s.Capacity, "GB")
	b.num("Frequency", s.Frequency, "MHz")
	b.str("Type", s.Type)
	b.num("Modules", s.Modules, "")
	b.str("Latency", s.Latency)
	b.flag("RGB", s.RGB)
	return b.out
}

type StorageSpec struct {
	Brand      *string `json:"brand"`
	Capacity   *int    `json:"capacity"` // GB
	Type       *string `json:"type"`
	Interface  *string `json:"interface"`
	FormFactor *string `json:"formFactor"`
}

func (s *StorageSpec) Kind() Kind { return KindStorage }

func (s *StorageSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.num("Capacity", s.Capacity, "GB")
	b.str("Type", s.Type)
	b.str("Interface", s.Interface)
	b.str("Form Factor", s.FormFactor)
	return b.out
}

type PSUSpec struct {
	Brand         *string `json:"brand"`
	Power         *int    `json:"power"` // W
	Certification *string `json:"certification"`
	FanSize       *int    `json:"fanSize"` // mm
	Modular       *bool   `json:"modular"`
}

func (s *PSUSpec) Kind() Kind { return KindPSU }

func (s *PSUSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.num("Power", s.Power, "W")
	b.str("Certification", s.Certification)
	b.num("Fan Size", s.FanSize, "mm")
	b.flag("Modular", s.Modular)
	return b.out
}

type MotherboardSpec struct {
	Brand       *string `json:"brand"`
	Socket      *string `json:"socket"`
	Chipset     *string `json:"chipset"`
	FormFactor  *string `json:"formFactor"`
	MemorySlots *int    `json:"memorySlots"`
	MaxMemory   *int    `json:"maxMemory"` // GB
	WiFi        *bool   `json:"wifi"`
	Bluetooth   *bool   `json:"bluetooth"`
}

func (s *MotherboardSpec) Kind() Kind { return KindMotherboard }

func (s *MotherboardSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Socket", s.Socket)
	b.str("Chipset", s.Chipset)
	b.str("Form Factor", s.FormFactor)
	b.num("Memory Slots", s.MemorySlots, "")
	b.num("Max Memory", s.MaxMemory, "GB")
	b.flag("WiFi", s.WiFi)
	b.flag("Bluetooth", s.Bluetooth)
	return b.out
}

type CoolingSpec struct {
	Brand        *string `json:"brand"`
	Type         *string `json:"type"`
	FanSize      *int    `json:"fanSize"`      // mm
	RadiatorSize *int    `json:"radiatorSize"` // mm
	NoiseLevel   *int    `json:"noiseLevel"`   // dB
	RGB          *bool   `json:"rgb"`
}

func (s *CoolingSpec) Kind() Kind { return KindCooling }

func (s *CoolingSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Type", s.Type)
	b.num("Fan Size", s.FanSize, "mm")
	b.num("Radiator Size", s.RadiatorSize, "mm")
	b.num("Noise Level", s.NoiseLevel, "dB")
	b.flag("RGB", s.RGB)
	return b.out
}

type CaseSpec struct {
	Brand           *string `json:"brand"`
	FormFactor      *string `json:"formFactor"`
	Color           *string `json:"color"`
	MaxGPULength    *int    `json:"maxGpuLength"`    // mm
	MaxCoolerHeight *int    `json:"maxCoolerHeight"` // mm
	Fans            *int    `json:"fans"`
	TemperedGlass   *bool   `json:"temperedGlass"`
}

func (s *CaseSpec) Kind() Kind { return KindCase }

func (s *CaseSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Form Factor", s.FormFactor)
	b.str("Color", s.Color)
	b.num("Max GPU Length", s.MaxGPULength, "mm")
	b.num("Max Cooler Height", s.MaxCoolerHeight, "mm")
	b.num("Fans Included", s.Fans, "")
	b.flag("Tempered Glass", s.TemperedGlass)
	return b.out
}

// ---- peripherals ----

type KeyboardSpec struct {
	Brand       *string `json:"brand"`
	Type        *string `json:"type"`
	Switches    *string `json:"switches"`
	Layout      *string `json:"layout"`
	PollingRate *int    `json:"pollingRate"` // Hz
	Wireless    *bool   `json:"wireless"`
	RGB         *bool   `json:"rgb"`
}

func (s *KeyboardSpec) Kind() Kind { return KindKeyboard }

func (s *KeyboardSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Type", s.Type)
	b.str("Switches", s.Switches)
	b.str("Layout", s.Layout)
	b.num("Polling Rate", s.PollingRate, "Hz")
	b.flag("Wireless", s.Wireless)
	b.flag("RGB", s.RGB)
	return b.out
}

type MouseSpec struct {
	Brand       *string `json:"brand"`
	Sensor      *string `json:"sensor"`
	DPI         *int    `json:"dpi"`
	Buttons     *int    `json:"buttons"`
	PollingRate *int    `json:"pollingRate"` // Hz
	Wireless    *bool   `json:"wireless"`
	RGB         *bool   `json:"rgb"`
}

func (s *MouseSpec) Kind() Kind { return KindMouse }

func (s *MouseSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Sensor", s.Sensor)
	b.num("DPI", s.DPI, "")
	b.num("Buttons", s.Buttons, "")
	b.num("Polling Rate", s.PollingRate, "Hz")
	b.flag("Wireless", s.Wireless)
	b.flag("RGB", s.RGB)
	return b.out
}

type MousePadSpec struct {
	Brand     *string `json:"brand"`
	Width     *int    `json:"width"`     // mm
	Depth     *int    `json:"depth"`     // mm
	Thickness *int    `json:"thickness"` // mm
	Surface   *string `json:"surface"`
	RGB       *bool   `json:"rgb"`
}

func (s *MousePadSpec) Kind() Kind { return KindMousePad }

func (s *MousePadSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.num("Width", s.Width, "mm")
	b.num("Depth", s.Depth, "mm")
	b.num("Thickness", s.Thickness, "mm")
	b.str("Surface", s.Surface)
	b.flag("RGB", s.RGB)
	return b.out
}

type MonitorSpec struct {
	Brand        *string `json:"brand"`
	Diagonal     *string `json:"diagonal"`
	Resolution   *string `json:"resolution"`
	PanelType    *string `json:"panelType"`
	RefreshRate  *int    `json:"refreshRate"`  // Hz
	ViewingAngle *int    `json:"viewingAngle"` // °
	Curved       *bool   `json:"curved"`
	HDR          *bool   `json:"hdr"`
}

func (s *MonitorSpec) Kind() Kind { return KindMonitor }

func (s *MonitorSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Diagonal", s.Diagonal)
	b.str("Resolution", s.Resolution)
	b.str("Panel Type", s.PanelType)
	b.num("Refresh Rate", s.RefreshRate, "Hz")
	b.num("Viewing Angle", s.ViewingAngle, "°")
	b.flag("Curved", s.Curved)
	b.flag("HDR", s.HDR)
	return b.out
}

type HeadphonesSpec struct {
	Brand           *string `json:"brand"`
	Type            *string `json:"type"`
	Sensitivity     *int    `json:"sensitivity"` // dB
	BatteryLife     *int    `json:"batteryLife"` // hours
	Wireless        *bool   `json:"wireless"`
	NoiseCancelling *bool   `json:"noiseCancelling"`
	Microphone      *bool   `json:"microphone"`
}

func (s *HeadphonesSpec) Kind() Kind { return KindHeadphones }

func (s *HeadphonesSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Type", s.Type)
	b.num("Sensitivity", s.Sensitivity, "dB")
	b.num("Battery Life", s.BatteryLife, "hours")
	b.flag("Wireless", s.Wireless)
	b.flag("Noise Cancelling", s.NoiseCancelling)
	b.flag("Microphone", s.Microphone)
	return b.out
}

type MicrophoneSpec struct {
	Brand       *string `json:"brand"`
	Type        *string `json:"type"`
	Pattern     *string `json:"pattern"`
	Sensitivity *int    `json:"sensitivity"` // dB
	SampleRate  *int    `json:"sampleRate"`  // Hz
	RGB         *bool   `json:"rgb"`
}

func (s *MicrophoneSpec) Kind() Kind { return KindMicrophone }

func (s *MicrophoneSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Type", s.Type)
	b.str("Pattern", s.Pattern)
	b.num("Sensitivity", s.Sensitivity, "dB")
	b.num("Sample Rate", s.SampleRate, "Hz")
	b.flag("RGB", s.RGB)
	return b.out
}

type CameraSpec struct {
	Brand       *string `json:"brand"`
	Resolution  *string `json:"resolution"`
	FrameRate   *int    `json:"frameRate"`   // fps
	FieldOfView *int    `json:"fieldOfView"` // °
	Autofocus   *bool   `json:"autofocus"`
	Microphone  *bool   `json:"microphone"`
}

func (s *CameraSpec) Kind() Kind { return KindCamera }

func (s *CameraSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Resolution", s.Resolution)
	b.num("Frame Rate", s.FrameRate, "fps")
	b.num("Field of View", s.FieldOfView, "°")
	b.flag("Autofocus", s.Autofocus)
	b.flag("Microphone", s.Microphone)
	return b.out
}

type SpeakersSpec struct {
	Brand         *string `json:"brand"`
	Configuration *string `json:"configuration"`
	Power         *int    `json:"power"` // W
	Bluetooth     *bool   `json:"bluetooth"`
	RGB           *bool   `json:"rgb"`
}

func (s *SpeakersSpec) Kind() Kind { return KindSpeakers }

func (s *SpeakersSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Configuration", s.Configuration)
	b.num("Power", s.Power, "W")
	b.flag("Bluetooth", s.Bluetooth)
	b.flag("RGB", s.RGB)
	return b.out
}

type GamepadSpec struct {
	Brand       *string `json:"brand"`
	Platform    *string `json:"platform"`
	Connection  *string `json:"connection"`
	BatteryLife *int    `json:"batteryLife"` // hours
	Vibration   *bool   `json:"vibration"`
	Wireless    *bool   `json:"wireless"`
}

func (s *GamepadSpec) Kind() Kind { return KindGamepad }

func (s *GamepadSpec) Attributes() Attrs {
	var b attrs
	b.str("Brand", s.Brand)
	b.str("Platform", s.Platform)
	b.str("Connection", s.Connection)
	b.num("Battery Life", s.BatteryLife, "hours")
	b.flag("Vibration", s.Vibration)
	b.flag("Wireless", s.Wireless)
	return b.out
}

// specKinds is the fixed dispatch order for decoding: internal component
// kinds first, then peripherals.
var specKinds = map[Kind]func() Spec{
	KindCPU:         func() Spec { return &CPUSpec{} },
	KindGPU:         func() Spec { return &GPUSpec{} },
	KindRAM:         func() Spec { return &RAMSpec{} },
	KindStorage:     func() Spec { return &StorageSpec{} },
	KindPSU:         func() Spec { return &PSUSpec{} },
	KindMotherboard: func() Spec { return &MotherboardSpec{} },
	KindCooling:     func() Spec { return &CoolingSpec{} },
	KindCase:        func() Spec { return &CaseSpec{} },
	KindKeyboard:    func() Spec { return &KeyboardSpec{} },
	KindMouse:       func() Spec { return &MouseSpec{} },
	KindMousePad:    func() Spec { return &MousePadSpec{} },
	KindMonitor:     func() Spec { return &MonitorSpec{} },
	KindHeadphones:  func() Spec { return &HeadphonesSpec{} },
	KindMicrophone:  func() Spec { return &MicrophoneSpec{} },
	KindCamera:      func() Spec { return &CameraSpec{} },
	KindSpeakers:    func() Spec { return &SpeakersSpec{} },
	KindGamepad:     func() Spec { return &GamepadSpec{} },
}

// DecodeSpec builds the typed sub-record for a category kind from the raw
// spec column. It is the only constructor, so a component never ends up with
// more than one populated sub-record. Empty raw data yields a nil Spec (the
// component simply has no specifications); an unknown kind is a
// data-integrity error.
func DecodeSpec(kind Kind, raw []byte) (Spec, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	mk, ok := specKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown spec kind %q", kind)
	}
	s := mk()
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("decode %s spec: %w", kind, err)
	}
	return s, nil
}

// Attributes is the display extractor: the flat ordered specification list
// for a component, empty when it has no spec sub-record.
func (c *Component) Attributes() Attrs {
	if c.Spec == nil {
		return nil
	}
	return c.Spec.Attributes()
}
