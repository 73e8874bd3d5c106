package domain

// RoomName is the unique key of a room.
type RoomName string

// NoRoom is reported by clients that are not a member of any room.
const NoRoom RoomName = ""
