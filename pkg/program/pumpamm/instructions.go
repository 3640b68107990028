package pumpamm

import (
	"github.com/gagliardetto/solana-go"
)

var (
	CreatePoolDiscriminator            = []byte{233, 146, 209, 142, 207, 104, 64, 188}
	DepositDiscriminator               = []byte{242, 35, 198, 137, 82, 225, 242, 182}
	WithdrawDiscriminator              = []byte{183, 18, 70, 156, 148, 109, 161, 34}
	BuyDiscriminator                   = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	SellDiscriminator                  = []byte{51, 230, 133, 164, 1, 127, 131, 173}
	CollectCoinCreatorFeeDiscriminator = []byte{160, 57, 89, 42, 181, 139, 43, 66}
	SetCoinCreatorDiscriminator        = []byte{210, 149, 128, 45, 188, 58, 78, 175}
	UpdateAdminDiscriminator           = []byte{161, 176, 40, 213, 60, 184, 179, 228}
	DisableDiscriminator               = []byte{185, 173, 187, 90, 216, 15, 238, 233}
	ExtendAccountDiscriminator         = []byte{234, 102, 194, 203, 150, 72, 62, 229}
)

// buy

type BuyArgs struct {
	BaseAmountOut    uint64     `bin:"base_amount_out"`
	MaxQuoteAmountIn uint64     `bin:"max_quote_amount_in"`
	TrackVolume      OptionBool `bin:"track_volume"`
}

type BuyAccounts struct {
	Pool                             solana.PublicKey
	User                             solana.PublicKey
	GlobalConfig                     solana.PublicKey
	BaseMint                         solana.PublicKey
	QuoteMint                        solana.PublicKey
	UserBaseTokenAccount             solana.PublicKey
	UserQuoteTokenAccount            solana.PublicKey
	PoolBaseTokenAccount             solana.PublicKey
	PoolQuoteTokenAccount            solana.PublicKey
	ProtocolFeeRecipient             solana.PublicKey
	ProtocolFeeRecipientTokenAccount solana.PublicKey
	BaseTokenProgram                 solana.PublicKey
	QuoteTokenProgram                solana.PublicKey
	SystemProgram                    solana.PublicKey
	AssociatedTokenProgram           solana.PublicKey
	EventAuthority                   solana.PublicKey
	Program                          solana.PublicKey
	CoinCreatorVaultAta              solana.PublicKey
	CoinCreatorVaultAuthority        solana.PublicKey
	GlobalVolumeAccumulator          solana.PublicKey
	UserVolumeAccumulator            solana.PublicKey
	FeeConfig                        solana.PublicKey
	FeeProgram                       solana.PublicKey
}

func (a BuyAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.User, true, true),
		solana.NewAccountMeta(a.GlobalConfig, false, false),
		solana.NewAccountMeta(a.BaseMint, false, false),
		solana.NewAccountMeta(a.QuoteMint, false, false),
		solana.NewAccountMeta(a.UserBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.UserQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.ProtocolFeeRecipient, false, false),
		solana.NewAccountMeta(a.ProtocolFeeRecipientTokenAccount, true, false),
		solana.NewAccountMeta(a.BaseTokenProgram, false, false),
		solana.NewAccountMeta(a.QuoteTokenProgram, false, false),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.AssociatedTokenProgram, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
		solana.NewAccountMeta(a.CoinCreatorVaultAta, true, false),
		solana.NewAccountMeta(a.CoinCreatorVaultAuthority, false, false),
		solana.NewAccountMeta(a.GlobalVolumeAccumulator, false, false),
		solana.NewAccountMeta(a.UserVolumeAccumulator, true, false),
		solana.NewAccountMeta(a.FeeConfig, false, false),
		solana.NewAccountMeta(a.FeeProgram, false, false),
	}
}

func BuildBuy(programID solana.PublicKey, accounts BuyAccounts, args BuyArgs) (solana.Instruction, error) {
	return newInstruction(programID, BuyDiscriminator, accounts.ToAccountMetas(), args)
}

// sell

type SellArgs struct {
	BaseAmountIn      uint64 `bin:"base_amount_in"`
	MinQuoteAmountOut uint64 `bin:"min_quote_amount_out"`
}

type SellAccounts struct {
	Pool                             solana.PublicKey
	User                             solana.PublicKey
	GlobalConfig                     solana.PublicKey
	BaseMint                         solana.PublicKey
	QuoteMint                        solana.PublicKey
	UserBaseTokenAccount             solana.PublicKey
	UserQuoteTokenAccount            solana.PublicKey
	PoolBaseTokenAccount             solana.PublicKey
	PoolQuoteTokenAccount            solana.PublicKey
	ProtocolFeeRecipient             solana.PublicKey
	ProtocolFeeRecipientTokenAccount solana.PublicKey
	BaseTokenProgram                 solana.PublicKey
	QuoteTokenProgram                solana.PublicKey
	SystemProgram                    solana.PublicKey
	AssociatedTokenProgram           solana.PublicKey
	EventAuthority                   solana.PublicKey
	Program                          solana.PublicKey
	CoinCreatorVaultAta              solana.PublicKey
	CoinCreatorVaultAuthority        solana.PublicKey
	FeeConfig                        solana.PublicKey
	FeeProgram                       solana.PublicKey
}

func (a SellAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.User, true, true),
		solana.NewAccountMeta(a.GlobalConfig, false, false),
		solana.NewAccountMeta(a.BaseMint, false, false),
		solana.NewAccountMeta(a.QuoteMint, false, false),
		solana.NewAccountMeta(a.UserBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.UserQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.ProtocolFeeRecipient, false, false),
		solana.NewAccountMeta(a.ProtocolFeeRecipientTokenAccount, true, false),
		solana.NewAccountMeta(a.BaseTokenProgram, false, false),
		solana.NewAccountMeta(a.QuoteTokenProgram, false, false),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.AssociatedTokenProgram, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
		solana.NewAccountMeta(a.CoinCreatorVaultAta, true, false),
		solana.NewAccountMeta(a.CoinCreatorVaultAuthority, false, false),
		solana.NewAccountMeta(a.FeeConfig, false, false),
		solana.NewAccountMeta(a.FeeProgram, false, false),
	}
}

func BuildSell(programID solana.PublicKey, accounts SellAccounts, args SellArgs) (solana.Instruction, error) {
	return newInstruction(programID, SellDiscriminator, accounts.ToAccountMetas(), args)
}

// create_pool

type CreatePoolArgs struct {
	Index         uint16           `bin:"index"`
	BaseAmountIn  uint64           `bin:"base_amount_in"`
	QuoteAmountIn uint64           `bin:"quote_amount_in"`
	CoinCreator   solana.PublicKey `bin:"coin_creator"`
}

type CreatePoolAccounts struct {
	Pool                   solana.PublicKey
	GlobalConfig           solana.PublicKey
	Creator                solana.PublicKey
	BaseMint               solana.PublicKey
	QuoteMint              solana.PublicKey
	LpMint                 solana.PublicKey
	UserBaseTokenAccount   solana.PublicKey
	UserQuoteTokenAccount  solana.PublicKey
	UserPoolTokenAccount   solana.PublicKey
	PoolBaseTokenAccount   solana.PublicKey
	PoolQuoteTokenAccount  solana.PublicKey
	SystemProgram          solana.PublicKey
	Token2022Program       solana.PublicKey
	BaseTokenProgram       solana.PublicKey
	QuoteTokenProgram      solana.PublicKey
	AssociatedTokenProgram solana.PublicKey
	EventAuthority         solana.PublicKey
	Program                solana.PublicKey
}

func (a CreatePoolAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.GlobalConfig, false, false),
		solana.NewAccountMeta(a.Creator, true, true),
		solana.NewAccountMeta(a.BaseMint, false, false),
		solana.NewAccountMeta(a.QuoteMint, false, false),
		solana.NewAccountMeta(a.LpMint, true, false),
		solana.NewAccountMeta(a.UserBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.UserQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.UserPoolTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.Token2022Program, false, false),
		solana.NewAccountMeta(a.BaseTokenProgram, false, false),
		solana.NewAccountMeta(a.QuoteTokenProgram, false, false),
		solana.NewAccountMeta(a.AssociatedTokenProgram, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildCreatePool(programID solana.PublicKey, accounts CreatePoolAccounts, args CreatePoolArgs) (solana.Instruction, error) {
	return newInstruction(programID, CreatePoolDiscriminator, accounts.ToAccountMetas(), args)
}

// deposit / withdraw share one account list

type LiquidityAccounts struct {
	Pool                  solana.PublicKey
	GlobalConfig          solana.PublicKey
	User                  solana.PublicKey
	BaseMint              solana.PublicKey
	QuoteMint             solana.PublicKey
	LpMint                solana.PublicKey
	UserBaseTokenAccount  solana.PublicKey
	UserQuoteTokenAccount solana.PublicKey
	UserPoolTokenAccount  solana.PublicKey
	PoolBaseTokenAccount  solana.PublicKey
	PoolQuoteTokenAccount solana.PublicKey
	TokenProgram          solana.PublicKey
	Token2022Program      solana.PublicKey
	EventAuthority        solana.PublicKey
	Program               solana.PublicKey
}

func (a LiquidityAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.GlobalConfig, false, false),
		solana.NewAccountMeta(a.User, false, true),
		solana.NewAccountMeta(a.BaseMint, false, false),
		solana.NewAccountMeta(a.QuoteMint, false, false),
		solana.NewAccountMeta(a.LpMint, true, false),
		solana.NewAccountMeta(a.UserBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.UserQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.UserPoolTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.TokenProgram, false, false),
		solana.NewAccountMeta(a.Token2022Program, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

type DepositArgs struct {
	LpTokenAmountOut uint64 `bin:"lp_token_amount_out"`
	MaxBaseAmountIn  uint64 `bin:"max_base_amount_in"`
	MaxQuoteAmountIn uint64 `bin:"max_quote_amount_in"`
}

func BuildDeposit(programID solana.PublicKey, accounts LiquidityAccounts, args DepositArgs) (solana.Instruction, error) {
	return newInstruction(programID, DepositDiscriminator, accounts.ToAccountMetas(), args)
}

type WithdrawArgs struct {
	LpTokenAmountIn   uint64 `bin:"lp_token_amount_in"`
	MinBaseAmountOut  uint64 `bin:"min_base_amount_out"`
	MinQuoteAmountOut uint64 `bin:"min_quote_amount_out"`
}

func BuildWithdraw(programID solana.PublicKey, accounts LiquidityAccounts, args WithdrawArgs) (solana.Instruction, error) {
	return newInstruction(programID, WithdrawDiscriminator, accounts.ToAccountMetas(), args)
}

// collect_coin_creator_fee

type CollectCoinCreatorFeeAccounts struct {
	QuoteMint                 solana.PublicKey
	QuoteTokenProgram         solana.PublicKey
	CoinCreator               solana.PublicKey
	CoinCreatorVaultAuthority solana.PublicKey
	CoinCreatorVaultAta       solana.PublicKey
	CoinCreatorTokenAccount   solana.PublicKey
	EventAuthority            solana.PublicKey
	Program                   solana.PublicKey
}

func (a CollectCoinCreatorFeeAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.QuoteMint, false, false),
		solana.NewAccountMeta(a.QuoteTokenProgram, false, false),
		solana.NewAccountMeta(a.CoinCreator, false, true),
		solana.NewAccountMeta(a.CoinCreatorVaultAuthority, false, false),
		solana.NewAccountMeta(a.CoinCreatorVaultAta, true, false),
		solana.NewAccountMeta(a.CoinCreatorTokenAccount, true, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildCollectCoinCreatorFee(programID solana.PublicKey, accounts CollectCoinCreatorFeeAccounts) (solana.Instruction, error) {
	return newInstruction(programID, CollectCoinCreatorFeeDiscriminator, accounts.ToAccountMetas(), nil)
}

// set_coin_creator

type SetCoinCreatorAccounts struct {
	Pool           solana.PublicKey
	Metadata       solana.PublicKey
	BondingCurve   solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a SetCoinCreatorAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.Metadata, false, false),
		solana.NewAccountMeta(a.BondingCurve, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildSetCoinCreator(programID solana.PublicKey, accounts SetCoinCreatorAccounts) (solana.Instruction, error) {
	return newInstruction(programID, SetCoinCreatorDiscriminator, accounts.ToAccountMetas(), nil)
}

// update_admin

type UpdateAdminAccounts struct {
	Admin          solana.PublicKey
	GlobalConfig   solana.PublicKey
	NewAdmin       solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a UpdateAdminAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Admin, false, true),
		solana.NewAccountMeta(a.GlobalConfig, true, false),
		solana.NewAccountMeta(a.NewAdmin, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildUpdateAdmin(programID solana.PublicKey, accounts UpdateAdminAccounts) (solana.Instruction, error) {
	return newInstruction(programID, UpdateAdminDiscriminator, accounts.ToAccountMetas(), nil)
}

// disable

type DisableArgs struct {
	DisableCreatePool bool `bin:"disable_create_pool"`
	DisableDeposit    bool `bin:"disable_deposit"`
	DisableWithdraw   bool `bin:"disable_withdraw"`
	DisableBuy        bool `bin:"disable_buy"`
	DisableSell       bool `bin:"disable_sell"`
}

type DisableAccounts struct {
	Admin          solana.PublicKey
	GlobalConfig   solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a DisableAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Admin, false, true),
		solana.NewAccountMeta(a.GlobalConfig, true, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildDisable(programID solana.PublicKey, accounts DisableAccounts, args DisableArgs) (solana.Instruction, error) {
	return newInstruction(programID, DisableDiscriminator, accounts.ToAccountMetas(), args)
}

// extend_account

type ExtendAccountAccounts struct {
	Account        solana.PublicKey
	User           solana.PublicKey
	SystemProgram  solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a ExtendAccountAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Account, true, false),
		solana.NewAccountMeta(a.User, false, true),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildExtendAccount(programID solana.PublicKey, accounts ExtendAccountAccounts) (solana.Instruction, error) {
	return newInstruction(programID, ExtendAccountDiscriminator, accounts.ToAccountMetas(), nil)
}
