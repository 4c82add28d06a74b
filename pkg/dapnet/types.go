package dapnet

import (
	"net/netip"
	"time"
)

// Connection is the public network address a node or transmitter connects from.
type Connection struct {
	IP   netip.Addr `json:"ip_addr"`
	Port int        `json:"port"`
}

// Node is a DAPNET core node relaying calls between transmitters.
type Node struct {
	Name    string     `json:"name"`
	Version string     `json:"version"`
	Status  NodeStatus `json:"status"`

	Longitude string `json:"longitude"`
	Latitude  string `json:"latitude"`

	Owners []string `json:"ownerNames"`

	Connection *Connection `json:"address,omitempty"`
}

// Transmitter is a radio station broadcasting pages.
type Transmitter struct {
	Name  string           `json:"name"`
	Usage TransmitterUsage `json:"usage"`

	Longitude string `json:"longitude"`
	Latitude  string `json:"latitude"`

	// Timeslots is the textual list of slots the transmitter is active on, e.g. "0123".
	Timeslots string `json:"timeSlot"`

	Owners []string `json:"ownerNames"`

	Status    TransmitterStatus `json:"status"`
	CallCount uint64            `json:"callCount"`

	Connection *Connection `json:"address,omitempty"`

	// NodeName is the DAPNET node the transmitter connects to.
	NodeName *string `json:"nodeName,omitempty"`

	// AuthKey is only present when the API user owns the transmitter.
	AuthKey *string `json:"authKey,omitempty"`

	DeviceType    *string `json:"deviceType,omitempty"`
	DeviceVersion *string `json:"deviceVersion,omitempty"`

	// Power in watts, as reported by the API.
	Power string `json:"power"`

	// AntennaAboveGroundLevel in metres.
	AntennaAboveGroundLevel int64       `json:"antennaAboveGroundLevel"`
	AntennaType             AntennaType `json:"antennaType"`

	// AntennaDirection in degrees. Only meaningful for directional antennas.
	AntennaDirection float64 `json:"antennaDirection"`

	AntennaGainDbi        float64 `json:"antennaGainDbi"`
	IdentificationAddress int64   `json:"identificationAddress"`

	LastUpdate     time.Time  `json:"lastUpdate"`
	LastConnected  *time.Time `json:"lastConnected,omitempty"`
	ConnectedSince *time.Time `json:"connectedSince,omitempty"`
}

// IsDirectional reports whether AntennaDirection carries a meaningful value.
func (t Transmitter) IsDirectional() bool {
	return t.AntennaType == AntennaDirectional
}

// TransmitterGroup is a named set of transmitters.
type TransmitterGroup struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Transmitters []string `json:"transmitterNames"`
	Owners       []string `json:"ownerNames"`
}

// Callsign is a registered pager identity.
type Callsign struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Numeric     bool     `json:"numeric"`
	Owners      []string `json:"ownerNames"`
}

// Rubric is a news channel pagers can subscribe to.
type Rubric struct {
	Name              string   `json:"name"`
	Label             string   `json:"label"`
	Number            int64    `json:"number"`
	TransmitterGroups []string `json:"transmitterGroupNames"`
	Owners            []string `json:"ownerNames"`
}

// Statistics are network-wide counters.
type Statistics struct {
	Users     int64 `json:"users"`
	Callsigns int64 `json:"callSigns"`

	Calls      int64 `json:"calls"`
	CallsTotal int64 `json:"callsTotal"`

	NodesOnline int64 `json:"nodesOnline"`
	NodesTotal  int64 `json:"nodesTotal"`

	TransmittersOnline int64 `json:"transmittersOnline"`
	TransmittersTotal  int64 `json:"transmittersTotal"`

	Rubrics int64 `json:"rubrics"`

	News      int64 `json:"news"`
	NewsTotal int64 `json:"newsTotal"`
}

// Call is a page as recorded by the API.
type Call struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Sender is the user who submitted the call.
	Sender string `json:"ownerName"`

	Recipients        []string `json:"callSignNames"`
	TransmitterGroups []string `json:"transmitterGroupNames"`

	Emergency bool `json:"emergency"`
}

// News is a rubric news item as recorded by the API.
type News struct {
	Rubric string `json:"rubricName"`
	Text   string `json:"text"`

	// Number is the slot (1-10) on Skyper pagers.
	Number *int `json:"number,omitempty"`

	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"ownerName"`
}
