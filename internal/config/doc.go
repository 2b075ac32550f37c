// Package config handles the optional .baseliner.yaml layout file and the
// flag/environment settings overlay. With no file present the layout is the
// fixed one: the anchor's own project, then projects/, then bitloop/examples/.
package config
