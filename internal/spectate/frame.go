// Package spectate broadcasts live game frames to WebSocket viewers.
// Frames are msgpack-encoded and sent as binary messages.
package spectate

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Sprite is one draw request in board units.
type Sprite struct {
	Visual string `msgpack:"v"`
	X      int    `msgpack:"x"`
	Y      int    `msgpack:"y"`
}

// Frame is a snapshot of one simulated tick.
type Frame struct {
	Tick     int      `msgpack:"t"`
	Player   string   `msgpack:"p"`
	Score    int      `msgpack:"s"`
	Crashes  int      `msgpack:"c"`
	CrashMax int      `msgpack:"cm"`
	GameOver bool     `msgpack:"go"`
	Width    int      `msgpack:"w"`
	Height   int      `msgpack:"h"`
	Sprites  []Sprite `msgpack:"sp"`
}

// Encode serializes a frame for the wire.
func Encode(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("spectate: encode frame: %w", err)
	}
	return data, nil
}

// Decode parses a frame received from the wire.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("spectate: decode frame: %w", err)
	}
	return f, nil
}
