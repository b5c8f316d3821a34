package config

import "encoding/xml"

// The xml* types below are the raw unmarshal targets for the WeekSchedule
// document (spec.md §6). No XSD library exists anywhere in the retrieval
// pack this module was built from, so validation against the schema
// constraints is hand-written in validate.go rather than delegated to a
// validator library.

type xmlWeekSchedule struct {
	XMLName xml.Name `xml:"WeekSchedule"`
	Sun     xmlDay   `xml:"Sun"`
	Mon     xmlDay   `xml:"Mon"`
	Tue     xmlDay   `xml:"Tue"`
	Wed     xmlDay   `xml:"Wed"`
	Thu     xmlDay   `xml:"Thu"`
	Fri     xmlDay   `xml:"Fri"`
	Sat     xmlDay   `xml:"Sat"`
}

type xmlDay struct {
	Zones []xmlZone `xml:"Zone"`
}

type xmlZone struct {
	Name         string                    `xml:"Name,attr"`
	Start        string                    `xml:"Start,attr"`
	Maintainer   string                    `xml:"Maintainer"`
	Description  string                    `xml:"Description"`
	Comment      string                    `xml:"Comment"`
	Main         xmlPlaylist               `xml:"Main"`
	Fallback     *xmlPlaylist              `xml:"Fallback"`
	Intermediate []xmlIntermediatePlaylist `xml:"Intermediate"`
}

type xmlPlaylist struct {
	Path    string   `xml:"Path,attr"`
	Shuffle bool     `xml:"Shuffle,attr"`
	Fader   *xmlFader `xml:"Fader"`
}

type xmlIntermediatePlaylist struct {
	xmlPlaylist
	Name              string `xml:"Name,attr"`
	SchedIntervalMins int    `xml:"SchedIntervalMins,attr"`
	NumSchedItems     int    `xml:"NumSchedItems,attr"`
}

type xmlFader struct {
	FadeInDurationSecs  float64 `xml:"FadeInDurationSecs,attr"`
	FadeOutDurationSecs float64 `xml:"FadeOutDurationSecs,attr"`
	MinLevel            float64 `xml:"MinLevel,attr"`
	MaxLevel            float64 `xml:"MaxLevel,attr"`
}
