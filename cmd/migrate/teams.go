package main

import "github.com/stitts-dev/nfl-edge/internal/models"

// nflTeams is the franchise reference data. Retractable and fixed roofs are
// both treated as domes.
var nflTeams = []models.TeamInfo{
	// AFC East
	{Abbreviation: "BUF", FullName: "Buffalo Bills", Stadium: "Highmark Stadium", Latitude: 42.7738, Longitude: -78.7870, Timezone: "America/New_York", Conference: "AFC", Division: "East"},
	{Abbreviation: "MIA", FullName: "Miami Dolphins", Stadium: "Hard Rock Stadium", Latitude: 25.9580, Longitude: -80.2389, Timezone: "America/New_York", Conference: "AFC", Division: "East"},
	{Abbreviation: "NE", FullName: "New England Patriots", Stadium: "Gillette Stadium", Latitude: 42.0909, Longitude: -71.2643, Timezone: "America/New_York", Conference: "AFC", Division: "East"},
	{Abbreviation: "NYJ", FullName: "New York Jets", Stadium: "MetLife Stadium", Latitude: 40.8135, Longitude: -74.0745, Timezone: "America/New_York", Conference: "AFC", Division: "East"},
	// AFC North
	{Abbreviation: "BAL", FullName: "Baltimore Ravens", Stadium: "M&T Bank Stadium", Latitude: 39.2780, Longitude: -76.6227, Timezone: "America/New_York", Conference: "AFC", Division: "North"},
	{Abbreviation: "CIN", FullName: "Cincinnati Bengals", Stadium: "Paycor Stadium", Latitude: 39.0955, Longitude: -84.5161, Timezone: "America/New_York", Conference: "AFC", Division: "North"},
	{Abbreviation: "CLE", FullName: "Cleveland Browns", Stadium: "Huntington Bank Field", Latitude: 41.5061, Longitude: -81.6995, Timezone: "America/New_York", Conference: "AFC", Division: "North"},
	{Abbreviation: "PIT", FullName: "Pittsburgh Steelers", Stadium: "Acrisure Stadium", Latitude: 40.4468, Longitude: -80.0158, Timezone: "America/New_York", Conference: "AFC", Division: "North"},
	// AFC South
	{Abbreviation: "HOU", FullName: "Houston Texans", Stadium: "NRG Stadium", Dome: true, Latitude: 29.6847, Longitude: -95.4107, Timezone: "America/Chicago", Conference: "AFC", Division: "South"},
	{Abbreviation: "IND", FullName: "Indianapolis Colts", Stadium: "Lucas Oil Stadium", Dome: true, Latitude: 39.7601, Longitude: -86.1639, Timezone: "America/Indiana/Indianapolis", Conference: "AFC", Division: "South"},
	{Abbreviation: "JAX", FullName: "Jacksonville Jaguars", Stadium: "EverBank Stadium", Latitude: 30.3239, Longitude: -81.6373, Timezone: "America/New_York", Conference: "AFC", Division: "South"},
	{Abbreviation: "TEN", FullName: "Tennessee Titans", Stadium: "Nissan Stadium", Latitude: 36.1665, Longitude: -86.7713, Timezone: "America/Chicago", Conference: "AFC", Division: "South"},
	// AFC West
	{Abbreviation: "DEN", FullName: "Denver Broncos", Stadium: "Empower Field at Mile High", Latitude: 39.7439, Longitude: -105.0201, Timezone: "America/Denver", Conference: "AFC", Division: "West"},
	{Abbreviation: "KC", FullName: "Kansas City Chiefs", Stadium: "GEHA Field at Arrowhead Stadium", Latitude: 39.0489, Longitude: -94.4839, Timezone: "America/Chicago", Conference: "AFC", Division: "West"},
	{Abbreviation: "LV", FullName: "Las Vegas Raiders", Stadium: "Allegiant Stadium", Dome: true, Latitude: 36.0909, Longitude: -115.1833, Timezone: "America/Los_Angeles", Conference: "AFC", Division: "West"},
	{Abbreviation: "LAC", FullName: "Los Angeles Chargers", Stadium: "SoFi Stadium", Dome: true, Latitude: 33.9535, Longitude: -118.3392, Timezone: "America/Los_Angeles", Conference: "AFC", Division: "West"},
	// NFC East
	{Abbreviation: "DAL", FullName: "Dallas Cowboys", Stadium: "AT&T Stadium", Dome: true, Latitude: 32.7473, Longitude: -97.0945, Timezone: "America/Chicago", Conference: "NFC", Division: "East"},
	{Abbreviation: "NYG", FullName: "New York Giants", Stadium: "MetLife Stadium", Latitude: 40.8135, Longitude: -74.0745, Timezone: "America/New_York", Conference: "NFC", Division: "East"},
	{Abbreviation: "PHI", FullName: "Philadelphia Eagles", Stadium: "Lincoln Financial Field", Latitude: 39.9008, Longitude: -75.1675, Timezone: "America/New_York", Conference: "NFC", Division: "East"},
	{Abbreviation: "WAS", FullName: "Washington Commanders", Stadium: "Northwest Stadium", Latitude: 38.9077, Longitude: -76.8645, Timezone: "America/New_York", Conference: "NFC", Division: "East"},
	// NFC North
	{Abbreviation: "CHI", FullName: "Chicago Bears", Stadium: "Soldier Field", Latitude: 41.8623, Longitude: -87.6167, Timezone: "America/Chicago", Conference: "NFC", Division: "North"},
	{Abbreviation: "DET", FullName: "Detroit Lions", Stadium: "Ford Field", Dome: true, Latitude: 42.3400, Longitude: -83.0456, Timezone: "America/Detroit", Conference: "NFC", Division: "North"},
	{Abbreviation: "GB", FullName: "Green Bay Packers", Stadium: "Lambeau Field", Latitude: 44.5013, Longitude: -88.0622, Timezone: "America/Chicago", Conference: "NFC", Division: "North"},
	{Abbreviation: "MIN", FullName: "Minnesota Vikings", Stadium: "U.S. Bank Stadium", Dome: true, Latitude: 44.9736, Longitude: -93.2575, Timezone: "America/Chicago", Conference: "NFC", Division: "North"},
	// NFC South
	{Abbreviation: "ATL", FullName: "Atlanta Falcons", Stadium: "Mercedes-Benz Stadium", Dome: true, Latitude: 33.7554, Longitude: -84.4008, Timezone: "America/New_York", Conference: "NFC", Division: "South"},
	{Abbreviation: "CAR", FullName: "Carolina Panthers", Stadium: "Bank of America Stadium", Latitude: 35.2258, Longitude: -80.8528, Timezone: "America/New_York", Conference: "NFC", Division: "South"},
	{Abbreviation: "NO", FullName: "New Orleans Saints", Stadium: "Caesars Superdome", Dome: true, Latitude: 29.9511, Longitude: -90.0812, Timezone: "America/Chicago", Conference: "NFC", Division: "South"},
	{Abbreviation: "TB", FullName: "Tampa Bay Buccaneers", Stadium: "Raymond James Stadium", Latitude: 27.9759, Longitude: -82.5033, Timezone: "America/New_York", Conference: "NFC", Division: "South"},
	// NFC West
	{Abbreviation: "ARI", FullName: "Arizona Cardinals", Stadium: "State Farm Stadium", Dome: true, Latitude: 33.5276, Longitude: -112.2626, Timezone: "America/Phoenix", Conference: "NFC", Division: "West"},
	{Abbreviation: "LAR", FullName: "Los Angeles Rams", Stadium: "SoFi Stadium", Dome: true, Latitude: 33.9535, Longitude: -118.3392, Timezone: "America/Los_Angeles", Conference: "NFC", Division: "West"},
	{Abbreviation: "SF", FullName: "San Francisco 49ers", Stadium: "Levi's Stadium", Latitude: 37.4030, Longitude: -121.9700, Timezone: "America/Los_Angeles", Conference: "NFC", Division: "West"},
	{Abbreviation: "SEA", FullName: "Seattle Seahawks", Stadium: "Lumen Field", Latitude: 47.5952, Longitude: -122.3316, Timezone: "America/Los_Angeles", Conference: "NFC", Division: "West"},
}
