package contracts

import "testing"

func TestParseMIDI(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		ok   bool
		want MIDI
	}{
		{"empty", nil, false, MIDI{}},
		{"one byte", []byte{0xF8}, false, MIDI{}},
		{"two bytes", []byte{0x90, 60}, false, MIDI{}},
		{"note on", []byte{0x90, 60, 100}, true, MIDI{Timestamp: 7, Command: 0x90, Note: 60, Velocity: 100}},
		{"note on channel 10", []byte{0x99, 36, 90}, true, MIDI{Timestamp: 7, Command: 0x90, Channel: 9, Note: 36, Velocity: 90}},
		{"note off", []byte{0x83, 60, 0}, true, MIDI{Timestamp: 7, Command: 0x80, Channel: 3, Note: 60}},
		{"trailing bytes", []byte{0x90, 60, 100, 0x90}, true, MIDI{Timestamp: 7, Command: 0x90, Note: 60, Velocity: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMIDI(tt.data, 7)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseMIDI = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNoteOnOff(t *testing.T) {
	tests := []struct {
		event MIDI
		on    bool
		off   bool
	}{
		{MIDI{Command: 0x90, Velocity: 1}, true, false},
		{MIDI{Command: 0x90, Velocity: 0}, false, true},
		{MIDI{Command: 0x80, Velocity: 64}, false, true},
		{MIDI{Command: 0xB0, Velocity: 64}, false, false},
	}

	for _, tt := range tests {
		if got := tt.event.IsNoteOn(); got != tt.on {
			t.Errorf("%+v IsNoteOn = %v, want %v", tt.event, got, tt.on)
		}
		if got := tt.event.IsNoteOff(); got != tt.off {
			t.Errorf("%+v IsNoteOff = %v, want %v", tt.event, got, tt.off)
		}
	}
}

func TestIsCommandAllowed(t *testing.T) {
	filter := &MIDIEventFilter{Commands: []MIDICommand{NoteOn, NoteOff}}

	if !IsCommandAllowed(0x90, filter) || !IsCommandAllowed(0x80, filter) {
		t.Error("note commands should pass the filter")
	}
	if IsCommandAllowed(0xB0, filter) {
		t.Error("control change should be filtered out")
	}
	if !IsCommandAllowed(0xB0, nil) {
		t.Error("nil filter should allow everything")
	}
}
