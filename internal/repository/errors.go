// Package repository implements the MySQL persistence layer. Each
// repository wraps one table (or a small cluster of related tables)
// and exposes typed methods over database/sql. The reservation
// repository additionally implements the engine's ReservationStore
// contract, including its atomicity requirements.
package repository

import "errors"

// ErrEmailExists is returned when inserting a user whose email is
// already registered. Handlers translate it into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrBuildingExists is returned when inserting a building whose name
// is already taken.
var ErrBuildingExists = errors.New("building already exists")

// ErrRoomExists is returned when inserting a room whose name already
// exists within the same building.
var ErrRoomExists = errors.New("room already exists in building")
