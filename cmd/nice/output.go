package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/gorilla/websocket"
)

// info is what the websocket feed sends for every report.
type info struct {
	Name         string      `json:"name"`
	Generation   int         `json:"generation"`
	Error        float32     `json:"error"`
	Fitness      int         `json:"fitness"`
	Examples     int         `json:"examples"`
	LearningRate float32     `json:"learning_rate"`
	Done         bool        `json:"done"`
	Links        [][]float32 `json:"links"`
}

// Encoder is a structure that feeds progress to a websocket according to the nice.OutputEncoder interface.
// Frames are dropped while no client keeps up.
type Encoder struct {
	info chan info
}

var upgrader = websocket.Upgrader{} // use default options

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer c.Close()
	for {
		var b []byte
		select {
		case info := <-enc.info:
			if b, err = json.Marshal(info); err != nil {
				log.Println("marshal:", err)
				continue
			}
		case <-r.Context().Done():
			return
		}
		if err = c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Println("write:", err)
			return
		}
	}
}

// NewEncoder creates a feed that holds up to backlog frames for slow clients.
func NewEncoder(backlog int) *Encoder {
	return &Encoder{info: make(chan info, backlog)}
}

// Encode a frame
func (enc *Encoder) Encode(f dagnn.Frame) error {
	select {
	case enc.info <- info{
		Name:         f.Name,
		Generation:   f.Generation,
		Error:        f.Error,
		Fitness:      f.Fitness,
		Examples:     f.Examples,
		LearningRate: f.LearningRate,
		Done:         f.Done,
		Links:        f.Links,
	}:
	default:
	}
	return nil
}

// Flush ...
func (enc *Encoder) Flush() error { return nil }
