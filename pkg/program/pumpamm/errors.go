package pumpamm

type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (e ProgramError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Name
}

var Errors = map[uint32]ProgramError{
	6000: {Code: 6000, Name: "FeeBasisPointsExceedsMaximum"},
	6001: {Code: 6001, Name: "ZeroBaseAmount"},
	6002: {Code: 6002, Name: "ZeroQuoteAmount"},
	6003: {Code: 6003, Name: "TooLittlePoolTokenLiquidity"},
	6004: {Code: 6004, Name: "ExceededSlippage", Msg: "Exceeded slippage"},
	6005: {Code: 6005, Name: "InvalidAdmin"},
	6006: {Code: 6006, Name: "UnsupportedBaseMint"},
	6007: {Code: 6007, Name: "UnsupportedQuoteMint"},
	6008: {Code: 6008, Name: "InvalidBaseMint"},
	6009: {Code: 6009, Name: "InvalidQuoteMint"},
	6010: {Code: 6010, Name: "InvalidLpMint"},
	6011: {Code: 6011, Name: "AllProtocolFeeRecipientsShouldBeNonZero"},
	6012: {Code: 6012, Name: "UnsortedNotUniqueProtocolFeeRecipients"},
	6013: {Code: 6013, Name: "InvalidProtocolFeeRecipient"},
	6014: {Code: 6014, Name: "InvalidPoolBaseTokenAccount"},
	6015: {Code: 6015, Name: "InvalidPoolQuoteTokenAccount"},
	6016: {Code: 6016, Name: "BuyMoreBaseAmountThanPoolReserves"},
	6017: {Code: 6017, Name: "DisabledCreatePool", Msg: "create_pool is disabled"},
	6018: {Code: 6018, Name: "DisabledDeposit", Msg: "deposit is disabled"},
	6019: {Code: 6019, Name: "DisabledWithdraw", Msg: "withdraw is disabled"},
	6020: {Code: 6020, Name: "DisabledBuy", Msg: "buy is disabled"},
	6021: {Code: 6021, Name: "DisabledSell", Msg: "sell is disabled"},
	6022: {Code: 6022, Name: "SameMint", Msg: "base and quote mint are the same"},
	6023: {Code: 6023, Name: "Overflow"},
	6024: {Code: 6024, Name: "Truncation"},
	6025: {Code: 6025, Name: "DivisionByZero"},
	6026: {Code: 6026, Name: "NewSizeLessThanCurrentSize"},
	6027: {Code: 6027, Name: "AccountTypeNotSupported"},
	6028: {Code: 6028, Name: "OnlyCanonicalPumpPoolsCanHaveCoinCreator"},
	6029: {Code: 6029, Name: "InvalidAdminSetCoinCreatorAuthority"},
}

func ErrorFromCode(code uint32) (ProgramError, bool) {
	err, ok := Errors[code]
	return err, ok
}
