package common

// Contract ABIs used by the resolution engine. Overloaded resolver methods
// (addr(bytes32) and addr(bytes32,uint256)) live in separate definitions so
// go-ethereum keeps the plain method name for both.

const multicallabi = `[
	{"type":"function","name":"tryAggregate","stateMutability":"payable",
	 "inputs":[{"name":"requireSuccess","type":"bool"},
	           {"name":"calls","type":"tuple[]","components":[
	             {"name":"target","type":"address"},
	             {"name":"callData","type":"bytes"}]}],
	 "outputs":[{"name":"returnData","type":"tuple[]","components":[
	             {"name":"success","type":"bool"},
	             {"name":"returnData","type":"bytes"}]}]},
	{"type":"function","name":"getCurrentBlockTimestamp","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"timestamp","type":"uint256"}]}
]`

const registryabi = `[
	{"type":"function","name":"owner","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"resolver","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"address"}]}
]`

const registrarabi = `[
	{"type":"function","name":"ownerOf","stateMutability":"view",
	 "inputs":[{"name":"tokenId","type":"uint256"}],
	 "outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"tokenOwnerOf","stateMutability":"view",
	 "inputs":[{"name":"tokenId","type":"uint256"}],
	 "outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"nameExpires","stateMutability":"view",
	 "inputs":[{"name":"id","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"GRACE_PERIOD","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

const namewrapperabi = `[
	{"type":"function","name":"ownerOf","stateMutability":"view",
	 "inputs":[{"name":"id","type":"uint256"}],
	 "outputs":[{"name":"owner","type":"address"}]},
	{"type":"function","name":"getData","stateMutability":"view",
	 "inputs":[{"name":"id","type":"uint256"}],
	 "outputs":[{"name":"owner","type":"address"},
	            {"name":"fuses","type":"uint32"},
	            {"name":"expiry","type":"uint64"}]}
]`

const universalresolverabi = `[
	{"type":"function","name":"resolve","stateMutability":"view",
	 "inputs":[{"name":"name","type":"bytes"},{"name":"data","type":"bytes"}],
	 "outputs":[{"name":"","type":"bytes"},{"name":"","type":"address"}]},
	{"type":"function","name":"reverse","stateMutability":"view",
	 "inputs":[{"name":"reverseName","type":"bytes"}],
	 "outputs":[{"name":"","type":"string"},{"name":"","type":"address"},
	            {"name":"","type":"address"},{"name":"","type":"address"}]},
	{"type":"function","name":"findResolver","stateMutability":"view",
	 "inputs":[{"name":"name","type":"bytes"}],
	 "outputs":[{"name":"","type":"address"},{"name":"","type":"bytes32"},
	            {"name":"","type":"uint256"}]},
	{"type":"error","name":"OffchainLookup",
	 "inputs":[{"name":"sender","type":"address"},{"name":"urls","type":"string[]"},
	           {"name":"callData","type":"bytes"},{"name":"callbackFunction","type":"bytes4"},
	           {"name":"extraData","type":"bytes"}]},
	{"type":"error","name":"ResolverNotFound","inputs":[]},
	{"type":"error","name":"ResolverWildcardNotSupported","inputs":[]}
]`

const resolverabi = `[
	{"type":"function","name":"addr","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"coinType","type":"uint256"}],
	 "outputs":[{"name":"","type":"bytes"}]},
	{"type":"function","name":"text","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"key","type":"string"}],
	 "outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"ABI","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"},{"name":"contentTypes","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"},{"name":"","type":"bytes"}]}
]`

const legacyresolverabi = `[
	{"type":"function","name":"addr","stateMutability":"view",
	 "inputs":[{"name":"node","type":"bytes32"}],
	 "outputs":[{"name":"","type":"address"}]}
]`
