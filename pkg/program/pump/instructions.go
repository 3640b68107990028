package pump

import (
	"github.com/gagliardetto/solana-go"
)

var (
	InitializeDiscriminator            = []byte{175, 175, 109, 31, 13, 152, 155, 237}
	SetParamsDiscriminator             = []byte{27, 234, 178, 52, 147, 2, 187, 141}
	CreateDiscriminator                = []byte{24, 30, 200, 40, 5, 28, 7, 119}
	BuyDiscriminator                   = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	SellDiscriminator                  = []byte{51, 230, 133, 164, 1, 127, 131, 173}
	CollectCreatorFeeDiscriminator     = []byte{20, 22, 86, 123, 198, 28, 219, 132}
	SetCreatorDiscriminator            = []byte{254, 148, 255, 112, 207, 142, 170, 165}
	SetMetaplexCreatorDiscriminator    = []byte{138, 96, 174, 217, 48, 85, 197, 246}
	UpdateGlobalAuthorityDiscriminator = []byte{227, 181, 74, 196, 208, 21, 97, 213}
	ExtendAccountDiscriminator         = []byte{234, 102, 194, 203, 150, 72, 62, 229}
	MigrateDiscriminator               = []byte{155, 234, 231, 146, 236, 158, 162, 30}
)

// initialize

type InitializeAccounts struct {
	Global        solana.PublicKey
	User          solana.PublicKey
	SystemProgram solana.PublicKey
}

func (a InitializeAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Global, true, false),
		solana.NewAccountMeta(a.User, true, true),
		solana.NewAccountMeta(a.SystemProgram, false, false),
	}
}

func BuildInitialize(programID solana.PublicKey, accounts InitializeAccounts) (solana.Instruction, error) {
	return newInstruction(programID, InitializeDiscriminator, accounts.ToAccountMetas(), nil)
}

// set_params

type SetParamsArgs struct {
	InitialVirtualTokenReserves uint64           `bin:"initial_virtual_token_reserves"`
	InitialVirtualSolReserves   uint64           `bin:"initial_virtual_sol_reserves"`
	InitialRealTokenReserves    uint64           `bin:"initial_real_token_reserves"`
	TokenTotalSupply            uint64           `bin:"token_total_supply"`
	FeeBasisPoints              uint64           `bin:"fee_basis_points"`
	WithdrawAuthority           solana.PublicKey `bin:"withdraw_authority"`
	EnableMigrate               bool             `bin:"enable_migrate"`
	PoolMigrationFee            uint64           `bin:"pool_migration_fee"`
	CreatorFeeBasisPoints       uint64           `bin:"creator_fee_basis_points"`
	SetCreatorAuthority         solana.PublicKey `bin:"set_creator_authority"`
}

type SetParamsAccounts struct {
	Global         solana.PublicKey
	Authority      solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a SetParamsAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Global, true, false),
		solana.NewAccountMeta(a.Authority, true, true),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildSetParams(programID solana.PublicKey, accounts SetParamsAccounts, args SetParamsArgs) (solana.Instruction, error) {
	return newInstruction(programID, SetParamsDiscriminator, accounts.ToAccountMetas(), args)
}

// create

type CreateArgs struct {
	Name    string           `bin:"name"`
	Symbol  string           `bin:"symbol"`
	Uri     string           `bin:"uri"`
	Creator solana.PublicKey `bin:"creator"`
}

type CreateAccounts struct {
	Mint                   solana.PublicKey
	MintAuthority          solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	Global                 solana.PublicKey
	MplTokenMetadata       solana.PublicKey
	Metadata               solana.PublicKey
	User                   solana.PublicKey
	SystemProgram          solana.PublicKey
	TokenProgram           solana.PublicKey
	AssociatedTokenProgram solana.PublicKey
	Rent                   solana.PublicKey
	EventAuthority         solana.PublicKey
	Program                solana.PublicKey
}

func (a CreateAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Mint, true, true),
		solana.NewAccountMeta(a.MintAuthority, false, false),
		solana.NewAccountMeta(a.BondingCurve, true, false),
		solana.NewAccountMeta(a.AssociatedBondingCurve, true, false),
		solana.NewAccountMeta(a.Global, false, false),
		solana.NewAccountMeta(a.MplTokenMetadata, false, false),
		solana.NewAccountMeta(a.Metadata, true, false),
		solana.NewAccountMeta(a.User, true, true),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.TokenProgram, false, false),
		solana.NewAccountMeta(a.AssociatedTokenProgram, false, false),
		solana.NewAccountMeta(a.Rent, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildCreate(programID solana.PublicKey, accounts CreateAccounts, args CreateArgs) (solana.Instruction, error) {
	return newInstruction(programID, CreateDiscriminator, accounts.ToAccountMetas(), args)
}

// buy

type BuyArgs struct {
	Amount      uint64     `bin:"amount"`
	MaxSolCost  uint64     `bin:"max_sol_cost"`
	TrackVolume OptionBool `bin:"track_volume"`
}

type BuyAccounts struct {
	Global                  solana.PublicKey
	FeeRecipient            solana.PublicKey
	Mint                    solana.PublicKey
	BondingCurve            solana.PublicKey
	AssociatedBondingCurve  solana.PublicKey
	AssociatedUser          solana.PublicKey
	User                    solana.PublicKey
	SystemProgram           solana.PublicKey
	TokenProgram            solana.PublicKey
	CreatorVault            solana.PublicKey
	EventAuthority          solana.PublicKey
	Program                 solana.PublicKey
	GlobalVolumeAccumulator solana.PublicKey
	UserVolumeAccumulator   solana.PublicKey
	FeeConfig               solana.PublicKey
	FeeProgram              solana.PublicKey
}

func (a BuyAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Global, false, false),
		solana.NewAccountMeta(a.FeeRecipient, true, false),
		solana.NewAccountMeta(a.Mint, false, false),
		solana.NewAccountMeta(a.BondingCurve, true, false),
		solana.NewAccountMeta(a.AssociatedBondingCurve, true, false),
		solana.NewAccountMeta(a.AssociatedUser, true, false),
		solana.NewAccountMeta(a.User, true, true),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.TokenProgram, false, false),
		solana.NewAccountMeta(a.CreatorVault, true, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
		solana.NewAccountMeta(a.GlobalVolumeAccumulator, true, false),
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
	Amount       uint64 `bin:"amount"`
	MinSolOutput uint64 `bin:"min_sol_output"`
}

type SellAccounts struct {
	Global                 solana.PublicKey
	FeeRecipient           solana.PublicKey
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	AssociatedUser         solana.PublicKey
	User                   solana.PublicKey
	SystemProgram          solana.PublicKey
	CreatorVault           solana.PublicKey
	TokenProgram           solana.PublicKey
	EventAuthority         solana.PublicKey
	Program                solana.PublicKey
	FeeConfig              solana.PublicKey
	FeeProgram             solana.PublicKey
}

func (a SellAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Global, false, false),
		solana.NewAccountMeta(a.FeeRecipient, true, false),
		solana.NewAccountMeta(a.Mint, false, false),
		solana.NewAccountMeta(a.BondingCurve, true, false),
		solana.NewAccountMeta(a.AssociatedBondingCurve, true, false),
		solana.NewAccountMeta(a.AssociatedUser, true, false),
		solana.NewAccountMeta(a.User, true, true),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.CreatorVault, true, false),
		solana.NewAccountMeta(a.TokenProgram, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
		solana.NewAccountMeta(a.FeeConfig, false, false),
		solana.NewAccountMeta(a.FeeProgram, false, false),
	}
}

func BuildSell(programID solana.PublicKey, accounts SellAccounts, args SellArgs) (solana.Instruction, error) {
	return newInstruction(programID, SellDiscriminator, accounts.ToAccountMetas(), args)
}

// collect_creator_fee

type CollectCreatorFeeAccounts struct {
	Creator        solana.PublicKey
	CreatorVault   solana.PublicKey
	SystemProgram  solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a CollectCreatorFeeAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Creator, true, true),
		solana.NewAccountMeta(a.CreatorVault, true, false),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildCollectCreatorFee(programID solana.PublicKey, accounts CollectCreatorFeeAccounts) (solana.Instruction, error) {
	return newInstruction(programID, CollectCreatorFeeDiscriminator, accounts.ToAccountMetas(), nil)
}

// set_creator

type SetCreatorArgs struct {
	Creator solana.PublicKey `bin:"creator"`
}

type SetCreatorAccounts struct {
	SetCreatorAuthority solana.PublicKey
	Global              solana.PublicKey
	Mint                solana.PublicKey
	Metadata            solana.PublicKey
	BondingCurve        solana.PublicKey
	EventAuthority      solana.PublicKey
	Program             solana.PublicKey
}

func (a SetCreatorAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.SetCreatorAuthority, false, true),
		solana.NewAccountMeta(a.Global, false, false),
		solana.NewAccountMeta(a.Mint, false, false),
		solana.NewAccountMeta(a.Metadata, false, false),
		solana.NewAccountMeta(a.BondingCurve, true, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildSetCreator(programID solana.PublicKey, accounts SetCreatorAccounts, args SetCreatorArgs) (solana.Instruction, error) {
	return newInstruction(programID, SetCreatorDiscriminator, accounts.ToAccountMetas(), args)
}

// set_metaplex_creator

type SetMetaplexCreatorAccounts struct {
	Mint           solana.PublicKey
	Metadata       solana.PublicKey
	BondingCurve   solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a SetMetaplexCreatorAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Mint, false, false),
		solana.NewAccountMeta(a.Metadata, false, false),
		solana.NewAccountMeta(a.BondingCurve, true, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildSetMetaplexCreator(programID solana.PublicKey, accounts SetMetaplexCreatorAccounts) (solana.Instruction, error) {
	return newInstruction(programID, SetMetaplexCreatorDiscriminator, accounts.ToAccountMetas(), nil)
}

// update_global_authority

type UpdateGlobalAuthorityAccounts struct {
	Global         solana.PublicKey
	Authority      solana.PublicKey
	NewAuthority   solana.PublicKey
	EventAuthority solana.PublicKey
	Program        solana.PublicKey
}

func (a UpdateGlobalAuthorityAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Global, true, false),
		solana.NewAccountMeta(a.Authority, false, true),
		solana.NewAccountMeta(a.NewAuthority, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildUpdateGlobalAuthority(programID solana.PublicKey, accounts UpdateGlobalAuthorityAccounts) (solana.Instruction, error) {
	return newInstruction(programID, UpdateGlobalAuthorityDiscriminator, accounts.ToAccountMetas(), nil)
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

// migrate

type MigrateAccounts struct {
	Global                   solana.PublicKey
	WithdrawAuthority        solana.PublicKey
	Mint                     solana.PublicKey
	BondingCurve             solana.PublicKey
	AssociatedBondingCurve   solana.PublicKey
	User                     solana.PublicKey
	SystemProgram            solana.PublicKey
	TokenProgram             solana.PublicKey
	PumpAmm                  solana.PublicKey
	Pool                     solana.PublicKey
	PoolAuthority            solana.PublicKey
	PoolAuthorityMintAccount solana.PublicKey
	PoolAuthorityWsolAccount solana.PublicKey
	AmmGlobalConfig          solana.PublicKey
	WsolMint                 solana.PublicKey
	LpMint                   solana.PublicKey
	UserPoolTokenAccount     solana.PublicKey
	PoolBaseTokenAccount     solana.PublicKey
	PoolQuoteTokenAccount    solana.PublicKey
	Token2022Program         solana.PublicKey
	AssociatedTokenProgram   solana.PublicKey
	PumpAmmEventAuthority    solana.PublicKey
	EventAuthority           solana.PublicKey
	Program                  solana.PublicKey
}

func (a MigrateAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Global, false, false),
		solana.NewAccountMeta(a.WithdrawAuthority, true, false),
		solana.NewAccountMeta(a.Mint, false, false),
		solana.NewAccountMeta(a.BondingCurve, true, false),
		solana.NewAccountMeta(a.AssociatedBondingCurve, true, false),
		solana.NewAccountMeta(a.User, false, true),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.TokenProgram, false, false),
		solana.NewAccountMeta(a.PumpAmm, false, false),
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.PoolAuthority, true, false),
		solana.NewAccountMeta(a.PoolAuthorityMintAccount, true, false),
		solana.NewAccountMeta(a.PoolAuthorityWsolAccount, true, false),
		solana.NewAccountMeta(a.AmmGlobalConfig, false, false),
		solana.NewAccountMeta(a.WsolMint, false, false),
		solana.NewAccountMeta(a.LpMint, true, false),
		solana.NewAccountMeta(a.UserPoolTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolBaseTokenAccount, true, false),
		solana.NewAccountMeta(a.PoolQuoteTokenAccount, true, false),
		solana.NewAccountMeta(a.Token2022Program, false, false),
		solana.NewAccountMeta(a.AssociatedTokenProgram, false, false),
		solana.NewAccountMeta(a.PumpAmmEventAuthority, false, false),
		solana.NewAccountMeta(a.EventAuthority, false, false),
		solana.NewAccountMeta(a.Program, false, false),
	}
}

func BuildMigrate(programID solana.PublicKey, accounts MigrateAccounts) (solana.Instruction, error) {
	return newInstruction(programID, MigrateDiscriminator, accounts.ToAccountMetas(), nil)
}
