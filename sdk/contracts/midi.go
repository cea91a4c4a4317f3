package contracts

// MIDI represents a channel voice MIDI event with a timestamp, command, channel, note, and velocity.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status nibble (e.g., Note On, Note Off) without the channel.
	Channel   byte   // Channel is the zero-based MIDI channel (0-15).
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
}

// IsNoteOn reports whether the event starts a note. A Note On with velocity 0 is a release.
func (m MIDI) IsNoteOn() bool {
	return m.Command == byte(NoteOn) && m.Velocity > 0
}

// IsNoteOff reports whether the event releases a note.
func (m MIDI) IsNoteOff() bool {
	return m.Command == byte(NoteOff) || (m.Command == byte(NoteOn) && m.Velocity == 0)
}

// ParseMIDI decodes a raw channel message. Messages shorter than 3 bytes carry no note
// data and are rejected with ok == false.
func ParseMIDI(data []byte, timestamp uint64) (event MIDI, ok bool) {
	if len(data) < 3 {
		return MIDI{}, false
	}
	return MIDI{
		Timestamp: timestamp,
		Command:   data[0] & 0xF0,
		Channel:   data[0] & 0x0F,
		Note:      data[1] & 0x7F,
		Velocity:  data[2] & 0x7F,
	}, true
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]PortInfo, error)    // Lists all available MIDI input ports.
	SelectDevice(deviceID int) error     // Opens a MIDI input port by its index.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
}

// CaptureReporter is implemented by clients whose StartCapture can fail after the port
// was opened. CaptureErr returns the failure of the last StartCapture, or nil.
type CaptureReporter interface {
	CaptureErr() error
}

// IsCommandAllowed checks if the MIDI command passes the filter. A nil filter allows everything.
func IsCommandAllowed(command byte, filter *MIDIEventFilter) bool {
	if filter == nil {
		return true
	}
	for _, allowed := range filter.Commands {
		if command == byte(allowed) {
			return true
		}
	}
	return false
}
