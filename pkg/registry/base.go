package registry

// baseMainnetEntries is the static contract table for Base mainnet (chain id
// 8453). Token decimals follow the deployed contracts.
var baseMainnetEntries = []Entry{
	// Tokens
	{Address: "0x4200000000000000000000000000000000000006", Symbol: "WETH", Decimals: 18, Category: CategoryToken},
	{Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Symbol: "USDC", Decimals: 6, Category: CategoryToken},
	{Address: "0xd9aAEc86B65D86f6A7B5B1b0c42FFA531710b6CA", Symbol: "USDbC", Decimals: 6, Category: CategoryToken},
	{Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", Symbol: "DAI", Decimals: 18, Category: CategoryToken},
	{Address: "0x2Ae3F1Ec7F1F5012CFEab0185bfc7aa3cf0DEc22", Symbol: "cbETH", Decimals: 18, Category: CategoryToken},
	{Address: "0x940181a94A35A4569E4529A3CDfB74e38FD98631", Symbol: "AERO", Decimals: 18, Category: CategoryToken, Protocol: "Aerodrome"},

	// DEX routers
	{Address: "0x2626664c2603336E57B271c5C0b26F421741e481", Symbol: "UNIV3_ROUTER", Decimals: 0, Category: CategoryRouter, Protocol: "Uniswap V3"},
	{Address: "0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD", Symbol: "UNIVERSAL_ROUTER", Decimals: 0, Category: CategoryRouter, Protocol: "Uniswap"},
	{Address: "0xcF77a3Ba9A5CA399B7c97c74d54e5b1Beb874E43", Symbol: "AERO_ROUTER", Decimals: 0, Category: CategoryRouter, Protocol: "Aerodrome"},
	{Address: "0x327Df1E6de05895d2ab08513aaDD9313Fe505d86", Symbol: "BASESWAP_ROUTER", Decimals: 0, Category: CategoryRouter, Protocol: "BaseSwap"},

	// DEX factories
	{Address: "0x33128a8fC17869897dcE68Ed026d694621f6FDfD", Symbol: "UNIV3_FACTORY", Decimals: 0, Category: CategoryFactory, Protocol: "Uniswap V3"},
	{Address: "0x420DD381b31aEf6683db6B902084cB0FFECe40Da", Symbol: "AERO_FACTORY", Decimals: 0, Category: CategoryFactory, Protocol: "Aerodrome"},

	// Canonical bridge (L1 contracts live on Ethereum mainnet)
	{Address: "0x3154Cf16ccdb4C6d922629664174b904d80F2C35", Symbol: "L1_STANDARD_BRIDGE", Decimals: 0, Category: CategoryBridge, Protocol: "Base Bridge", BridgeRole: BridgeRoleDeposit},
	{Address: "0x4200000000000000000000000000000000000010", Symbol: "L2_STANDARD_BRIDGE", Decimals: 0, Category: CategoryBridge, Protocol: "Base Bridge", BridgeRole: BridgeRoleWithdrawal},
	{Address: "0x49048044D57e1C92A77f79988d21Fa8fAF74E97e", Symbol: "OPTIMISM_PORTAL", Decimals: 0, Category: CategoryBridge, Protocol: "Base Bridge", BridgeRole: BridgeRolePortal},

	// Yield
	{Address: "0xA238Dd80C259a72e81d7e4664a9801593F98d1c5", Symbol: "AAVE_V3_POOL", Decimals: 0, Category: CategoryYield, Protocol: "Aave V3"},
	{Address: "0xb125E6687d4313864e53df431d5425969c15Eb2F", Symbol: "COMET_USDC", Decimals: 0, Category: CategoryYield, Protocol: "Compound V3"},

	// NFT marketplaces
	{Address: "0x00000000000000ADc04C56Bf30aC9d3c0aAF14dC", Symbol: "SEAPORT", Decimals: 0, Category: CategoryMarketplace, Protocol: "OpenSea"},
}
