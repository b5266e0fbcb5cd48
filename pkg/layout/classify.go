package layout

import (
	"strings"

	"github.com/matzehuels/blueprint/pkg/model"
)

// Kind is the normalized room category derived from a room name or program.
type Kind string

const (
	KindMaster      Kind = "master"
	KindEnsuite     Kind = "ensuite"
	KindBedroom     Kind = "bedroom"
	KindBathroom    Kind = "bathroom"
	KindWC          Kind = "wc"
	KindKitchen     Kind = "kitchen"
	KindDining      Kind = "dining"
	KindLiving      Kind = "living"
	KindCirculation Kind = "circulation"
	KindStudy       Kind = "study"
	KindUtility     Kind = "utility"
	KindGarage      Kind = "garage"
	KindStorage     Kind = "storage"
	KindDressing    Kind = "dressing"
	KindOther       Kind = "other"
)

// FloorPref is where auto-level assignment puts a room.
type FloorPref int

const (
	FloorFlexible FloorPref = iota
	FloorGround
	FloorUpper
)

// KindInfo is the per-kind lookup row.
type KindInfo struct {
	Zone        model.ZoneType
	Floor       FloorPref
	Aspect      float64 // preferred long/short side ratio
	DefaultArea float64 // m², used when the brief gives none
	Habitable   bool
}

// keywordRule maps name keywords to a kind. Rules are checked in order and
// the first rule with a matching keyword wins, so compound names such as
// "master en-suite" or "family bathroom" resolve to the more specific kind.
type keywordRule struct {
	kind     Kind
	keywords []string
}

var keywordRules = []keywordRule{
	{KindEnsuite, []string{"en suite", "ensuite"}},
	{KindMaster, []string{"master", "principal"}},
	{KindBathroom, []string{"bathroom", "bath", "shower"}},
	{KindWC, []string{"wc", "toilet", "cloak", "powder"}},
	{KindDressing, []string{"dressing", "walk in"}},
	{KindBedroom, []string{"bedroom", "bed", "nursery", "guest"}},
	{KindKitchen, []string{"kitchen"}},
	{KindLiving, []string{"living", "lounge", "sitting", "family", "reception"}},
	{KindDining, []string{"dining", "diner"}},
	{KindCirculation, []string{"hall", "landing", "stair", "corridor", "entrance", "foyer", "lobby"}},
	{KindStudy, []string{"study", "office", "library"}},
	{KindUtility, []string{"utility", "laundry", "boot"}},
	{KindGarage, []string{"garage", "carport"}},
	{KindStorage, []string{"store", "storage", "pantry", "closet", "cupboard"}},
}

var kindTable = map[Kind]KindInfo{
	KindMaster:      {model.ZonePrivate, FloorUpper, 1.3, 14, true},
	KindEnsuite:     {model.ZonePrivate, FloorUpper, 1.4, 4, false},
	KindBedroom:     {model.ZonePrivate, FloorUpper, 1.25, 11, true},
	KindBathroom:    {model.ZonePrivate, FloorUpper, 1.4, 5, false},
	KindWC:          {model.ZoneService, FloorGround, 1.6, 2, false},
	KindKitchen:     {model.ZoneService, FloorGround, 1.4, 12, true},
	KindDining:      {model.ZonePublic, FloorGround, 1.3, 12, true},
	KindLiving:      {model.ZonePublic, FloorGround, 1.4, 18, true},
	KindCirculation: {model.ZonePublic, FloorFlexible, 1.9, 7, false},
	KindStudy:       {model.ZonePublic, FloorFlexible, 1.2, 9, true},
	KindUtility:     {model.ZoneService, FloorGround, 1.5, 5, false},
	KindGarage:      {model.ZoneService, FloorGround, 1.8, 18, false},
	KindStorage:     {model.ZoneService, FloorFlexible, 1.5, 3, false},
	KindDressing:    {model.ZonePrivate, FloorUpper, 1.5, 5, false},
	KindOther:       {model.ZonePublic, FloorFlexible, 1.3, 10, true},
}

// normalizeName lowercases s and turns separators into single spaces.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '/', '.', ',':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func matchKind(s string) (Kind, bool) {
	s = normalizeName(s)
	if s == "" {
		return "", false
	}
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(s, kw) {
				return rule.kind, true
			}
		}
	}
	return "", false
}

// Classify returns the kind of a room from its program tag, falling back to
// its name.
func Classify(name, program string) Kind {
	if k, ok := matchKind(program); ok {
		return k
	}
	if k, ok := matchKind(name); ok {
		return k
	}
	return KindOther
}

// Info returns the lookup row of a kind.
func Info(k Kind) KindInfo {
	if info, ok := kindTable[k]; ok {
		return info
	}
	return kindTable[KindOther]
}

// ZoneOf resolves the zone of a room: a valid explicit zone type wins, then
// the kind table.
func ZoneOf(explicit string, k Kind) model.ZoneType {
	switch z := model.ZoneType(strings.ToLower(strings.TrimSpace(explicit))); z {
	case model.ZonePublic, model.ZonePrivate, model.ZoneService:
		return z
	}
	return Info(k).Zone
}

// FloorOf returns the auto-level preference of a room. Landings are upper
// floor circulation; other circulation stays flexible.
func FloorOf(name string, k Kind) FloorPref {
	if k == KindCirculation {
		n := normalizeName(name)
		switch {
		case strings.Contains(n, "landing"):
			return FloorUpper
		case strings.Contains(n, "entrance"), strings.Contains(n, "foyer"), strings.Contains(n, "hall"):
			return FloorGround
		}
	}
	return Info(k).Floor
}

// IsHabitable reports whether rooms of kind k need daylight.
func IsHabitable(k Kind) bool { return Info(k).Habitable }

type kindPair struct{ a, b Kind }

var affinityTable = map[kindPair]int{
	{KindKitchen, KindDining}:       10,
	{KindMaster, KindEnsuite}:       10,
	{KindLiving, KindDining}:        8,
	{KindKitchen, KindUtility}:      7,
	{KindKitchen, KindLiving}:       6,
	{KindBedroom, KindBathroom}:     6,
	{KindGarage, KindUtility}:       6,
	{KindMaster, KindDressing}:      6,
	{KindCirculation, KindLiving}:   5,
	{KindCirculation, KindWC}:       5,
	{KindCirculation, KindBathroom}: 5,
	{KindCirculation, KindBedroom}:  4,
	{KindCirculation, KindMaster}:   4,
	{KindCirculation, KindGarage}:   4,
	{KindCirculation, KindKitchen}:  3,
	{KindCirculation, KindStudy}:    3,
	{KindStudy, KindLiving}:         3,
	{KindCirculation, KindStorage}:  2,
	{KindKitchen, KindStorage}:      2,
	{KindEnsuite, KindDressing}:     2,
	{KindCirculation, KindUtility}:  1,
	{KindCirculation, KindDining}:   1,
	{KindCirculation, KindDressing}: 1,
	{KindBedroom, KindStudy}:        1,
	{KindBathroom, KindEnsuite}:     1,
	{KindCirculation, KindOther}:    1,
}

// sameKindBonus is added when both rooms share a kind, so repeated
// bedrooms cluster.
const sameKindBonus = 2

// Affinity returns the symmetric pairwise adjacency score of two kinds.
func Affinity(a, b Kind) int {
	score := affinityTable[kindPair{a, b}] + affinityTable[kindPair{b, a}]
	if a == b {
		score = affinityTable[kindPair{a, b}] + sameKindBonus
	}
	return score
}
