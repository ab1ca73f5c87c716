package model

import "time"

// RoomType categorizes a room and determines which authority may
// approve or reject bookings against it: CLASSROOM rooms are
// administered by the program office, BREAKOUT rooms by the incharge
// of the owning building.
type RoomType string

const (
	RoomClassroom RoomType = "CLASSROOM"
	RoomBreakout  RoomType = "BREAKOUT"
)

// ParseRoomType maps a raw string onto a RoomType; the boolean
// reports whether the input named a known type.
func ParseRoomType(s string) (RoomType, bool) {
	switch RoomType(s) {
	case RoomClassroom, RoomBreakout:
		return RoomType(s), true
	}
	return "", false
}

// String returns the wire representation of the room type.
func (t RoomType) String() string { return string(t) }

// Building represents a row in the `buildings` table. Each building
// has exactly one incharge user who administers its breakout rooms.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – unique building name.
//  InchargeID – user ID of the building incharge.
//  CreatedAt  – creation timestamp.
type Building struct {
	ID         uint64    // buildings.id
	Name       string    // buildings.name
	InchargeID uint64    // buildings.incharge_id
	CreatedAt  time.Time // buildings.created_at
}

// Room represents a bookable room as stored in the `rooms` table.
// Rooms are reference data for the reservation engine: the engine
// reads them to resolve the owning building and the responsible
// authority, and never mutates them.
//
// Fields:
//  ID         – primary key identifier.
//  BuildingID – owning building.
//  Name       – room display name, unique per building.
//  Type       – CLASSROOM or BREAKOUT.
//  CreatedAt  – creation timestamp.
type Room struct {
	ID         uint64    // rooms.id
	BuildingID uint64    // rooms.building_id
	Name       string    // rooms.name
	Type       RoomType  // rooms.room_type
	CreatedAt  time.Time // rooms.created_at
}
