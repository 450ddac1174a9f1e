// Package rocketfuel implements the driven API ports over the Rocket Fuel REST API.
//
// Every call is a thin pass-through to an apiclient.Client: build the path,
// pick the method and body, decode the response.
package rocketfuel
