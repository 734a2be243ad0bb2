package productivity

import (
	"strconv"
	"strings"
)

// StationID identifies a sorting station. 0 is the automated line, 1-5 are manual positions.
type StationID int

const (
	StationMachine StationID = iota
	Station1
	Station2
	Station3
	Station4
	Station5
)

// NumStations is the number of stations tracked per day.
const NumStations = 6

// Group separates the automated line from the manual positions.
type Group string

const (
	GroupMachine Group = "machine"
	GroupManual  Group = "manual"
)

// Stations lists every station in display order.
var Stations = [NumStations]StationID{StationMachine, Station1, Station2, Station3, Station4, Station5}

// ManualStations lists the manual positions in display order.
var ManualStations = [...]StationID{Station1, Station2, Station3, Station4, Station5}

type prefixRule struct {
	prefix  string
	station StationID
}

// Manual stations print "<n>S" at the start of the datamatrix code.
var manualPrefixRules = []prefixRule{
	{prefix: "1S", station: Station1},
	{prefix: "2S", station: Station2},
	{prefix: "3S", station: Station3},
	{prefix: "4S", station: Station4},
	{prefix: "5S", station: Station5},
}

const (
	// automatedLinePrefix marks codes printed by the sorting machine. Only
	// reached once "2S" has been ruled out above.
	automatedLinePrefix = "2"

	// FallbackStation receives every code that matches no rule. Unknown
	// formats are counted as machine throughput.
	FallbackStation = StationMachine
)

// ClassifyStation maps a raw datamatrix code to its station. It never fails.
func ClassifyStation(code string) StationID {
	for _, rule := range manualPrefixRules {
		if strings.HasPrefix(code, rule.prefix) {
			return rule.station
		}
	}
	if strings.HasPrefix(code, automatedLinePrefix) {
		return StationMachine
	}
	return FallbackStation
}

// IsValid reports whether the id is one of the known stations.
func (s StationID) IsValid() bool {
	return s >= StationMachine && s <= Station5
}

// IsMachine reports whether the station is the automated line.
func (s StationID) IsMachine() bool { return s == StationMachine }

// Group returns the averaging group the station belongs to.
func (s StationID) Group() Group {
	if s.IsMachine() {
		return GroupMachine
	}
	return GroupManual
}

// Label returns the display name, e.g. "Station 0 (Machine)".
func (s StationID) Label() string {
	label := "Station " + strconv.Itoa(int(s))
	if s.IsMachine() {
		label += " (Machine)"
	}
	return label
}
