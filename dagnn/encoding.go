package dagnn

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

func (n *Network) GobEncode() (retVal []byte, err error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err = enc.Encode(n.Config); err != nil {
		return nil, err
	}
	if err = enc.Encode(n.links != nil); err != nil {
		return nil, err
	}
	if n.links != nil {
		if err = enc.Encode(n.links); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (n *Network) GobDecode(p []byte) error {
	buf := bytes.NewBuffer(p)
	dec := gob.NewDecoder(buf)

	var conf Config
	if err := dec.Decode(&conf); err != nil {
		return errors.Wrap(err, "decoding config")
	}
	if err := conf.validate(); err != nil {
		return errors.WithMessage(err, "decoded config is invalid")
	}
	n.Config = conf
	n.nodes = make([]float32, conf.Units())
	n.init()

	var hasLinks bool
	if err := dec.Decode(&hasLinks); err != nil {
		return errors.Wrap(err, "decoding links")
	}
	switch {
	case !hasLinks && n.links == nil:
		return nil
	case hasLinks != (n.links != nil):
		return errors.Errorf("decoded links do not fit structure %+v", n.Structure)
	}
	links := new(tensor.Dense)
	if err := dec.Decode(links); err != nil {
		return errors.Wrap(err, "decoding links")
	}
	if !links.Shape().Eq(n.links.Shape()) {
		return errors.Errorf("decoded links have shape %v. Expected %v", links.Shape(), n.links.Shape())
	}
	data, ok := links.Data().([]float32)
	if !ok {
		return errors.Errorf("decoded links are %T. Expected []float32", links.Data())
	}
	copy(n.backing, data)
	return n.CheckAcyclic()
}
