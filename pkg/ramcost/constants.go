package ramcost

// RAM costs, in GB, that are not read from the cost table.
const (
	ScriptBaseRamCost         = 1.6
	ScriptDomRamCost          = 25
	ScriptHacknetNodesRamCost = 4
	ScriptCorporationRamCost  = 1024 - ScriptBaseRamCost
)
