// Package models defines the persisted records of pour-decisions.
//
// A Group owns its Members, Items and Orders. Each Order is paid by one
// Member and holds OrderLines; each line references one Item and is
// attributed to the Member who consumed it.
//
// Balances and settlements are not modelled here. They are derived on
// demand by the calculator package from a Snapshot and never stored.
//
// Relationships use ID strings rather than pointers.
package models
