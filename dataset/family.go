package dataset

import "hermannm.dev/enumnames"

// Family identifies one of the survey dataset families served by the dashboard.
// Each family is loaded from its own source and cached for the process lifetime.
type Family uint8

const (
	FamilyTimeUse Family = iota + 1
	FamilyTravel
	FamilyTrips
	FamilyDayPattern
)

var familyMap = enumnames.NewMap(map[Family]string{
	FamilyTimeUse:    "time-use",
	FamilyTravel:     "travel",
	FamilyTrips:      "trips",
	FamilyDayPattern: "day-pattern",
})

func (family Family) IsValid() bool {
	return familyMap.ContainsEnumValue(family)
}

func (family Family) String() string {
	return familyMap.GetNameOrFallback(family, "[INVALID DATASET FAMILY]")
}

func (family Family) MarshalJSON() ([]byte, error) {
	return familyMap.MarshalToNameJSON(family)
}

func (family *Family) UnmarshalJSON(bytes []byte) error {
	return familyMap.UnmarshalFromNameJSON(bytes, family)
}

func Families() []Family {
	return []Family{FamilyTimeUse, FamilyTravel, FamilyTrips, FamilyDayPattern}
}
