package mcp

var HandleStats = handleStats
