package dapnet

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NodeStatus is the reported state of a DAPNET node.
type NodeStatus string

const (
	NodeOnline    NodeStatus = "ONLINE"
	NodeSuspended NodeStatus = "SUSPENDED"
	NodeError     NodeStatus = "ERROR"
)

// TransmitterUsage distinguishes personal from wide-range transmitters.
type TransmitterUsage string

const (
	UsagePersonal  TransmitterUsage = "PERSONAL"
	UsageWiderange TransmitterUsage = "WIDERANGE"
)

// TransmitterStatus is the reported state of a transmitter.
type TransmitterStatus string

const (
	TransmitterOffline TransmitterStatus = "OFFLINE"
	TransmitterOnline  TransmitterStatus = "ONLINE"
	TransmitterError   TransmitterStatus = "ERROR"
)

// AntennaType of a transmitter.
type AntennaType string

const (
	AntennaOmni        AntennaType = "OMNI"
	AntennaDirectional AntennaType = "DIRECTIONAL"
)

// decodeToken unmarshals a JSON string into dst and checks it against a
// closed set. JSON null is not a member of any set.
func decodeToken[T ~string](data []byte, dst *T, kind string, allowed ...T) error {
	if string(data) == "null" {
		return fmt.Errorf("%w: %s is null", ErrUnknownToken, kind)
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	for _, a := range allowed {
		if T(s) == a {
			*dst = a
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", ErrUnknownToken, kind, s)
}

func (s *NodeStatus) UnmarshalJSON(data []byte) error {
	return decodeToken(data, s, "node status", NodeOnline, NodeSuspended, NodeError)
}

func (u *TransmitterUsage) UnmarshalJSON(data []byte) error {
	return decodeToken(data, u, "transmitter usage", UsagePersonal, UsageWiderange)
}

func (s *TransmitterStatus) UnmarshalJSON(data []byte) error {
	return decodeToken(data, s, "transmitter status", TransmitterOffline, TransmitterOnline, TransmitterError)
}

func (a *AntennaType) UnmarshalJSON(data []byte) error {
	return decodeToken(data, a, "antenna type", AntennaOmni, AntennaDirectional)
}

// requireToken reports an enum field the API left out.
func requireToken[T ~string](v T, kind string) error {
	if v == "" {
		return fmt.Errorf("%w: %s is missing", ErrUnknownToken, kind)
	}
	return nil
}

func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if err := requireToken(p.Status, "node status"); err != nil {
		return err
	}
	*n = Node(p)
	return nil
}

func (t *Transmitter) UnmarshalJSON(data []byte) error {
	type plain Transmitter
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if err := errors.Join(
		requireToken(p.Usage, "transmitter usage"),
		requireToken(p.Status, "transmitter status"),
		requireToken(p.AntennaType, "antenna type"),
	); err != nil {
		return err
	}
	*t = Transmitter(p)
	return nil
}
