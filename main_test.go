package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLogLine(t *testing.T) {
	assert.True(t, isLogLine("|switch|p2a: Gengar|Gengar, L50|100/100"))
	assert.True(t, isLogLine("|tie"))
	assert.True(t, isLogLine("|-damage|p1a: Pikachu|40/100"))
	assert.False(t, isLogLine("|request|{}"))
	assert.False(t, isLogLine("|upkeep"))
	assert.False(t, isLogLine("plain chat"))
}

func TestLiveClient_NotConnected(t *testing.T) {
	var live liveClient
	assert.Error(t, live.Choose("battle-1", "/choose default", 1))
}
