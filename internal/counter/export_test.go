package counter

var ParseReport = parseReport
