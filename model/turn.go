package model

// TurnInput is the fully materialised state handed to the engine for one
// turn: the spendable budget, the complete link and vehicle rosters, and any
// stations revealed this turn (including refreshed landing-pad passenger
// counts for stations already known).
type TurnInput struct {
	Budget   int
	Links    []Link
	Vehicles []Vehicle
	Stations []Station
}
