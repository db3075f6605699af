package transactionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/pkg/errorspkg"
	"github.com/go-arkady/demo-bank/pkg/randompkg"
)

const testFundingAmountMax = "10000"

var (
	cardInstrument = domain.FundingInstrument{
		Type:          domain.InstrumentCard,
		AccountNumber: "4111111111111111",
	}
	bankInstrument = domain.FundingInstrument{
		Type:          domain.InstrumentBank,
		AccountNumber: "000123456789",
		RoutingNumber: "110000000",
	}
)

func TestFund(t *testing.T) {
	owner := randompkg.Owner()

	const accountID = int64(1)

	now := time.Now().Truncate(time.Second).UTC()

	testResult := domain.FundResult{
		Transaction: domain.Transaction{
			ID:          1,
			AccountID:   accountID,
			Type:        domain.Deposit,
			Amount:      "100.00",
			Description: "Funding from card",
			Status:      domain.TransactionCompleted,
			CreatedAt:   now,
			ProcessedAt: now,
		},
		Balance: "100.00",
	}

	type input struct {
		amount     string
		instrument domain.FundingInstrument
	}

	testCases := []struct {
		name          string
		input         input
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.FundResult, err error)
	}{
		{
			name:  "MalformedAmount",
			input: input{"!@#$", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:  "NegativeAmount",
			input: input{"-100", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:  "LeadingZeroAmount",
			input: input{"0100", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:  "TooManyDecimalPlaces",
			input: input{"1.005", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:  "ZeroAmount",
			input: input{"0", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAmountTooSmall.Error())
			},
		},
		{
			name:  "AmountAboveCeiling",
			input: input{"10000.01", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAmountTooLarge.Error())
			},
		},
		{
			name: "CardFailsLuhnCheck",
			input: input{"100.00", domain.FundingInstrument{
				Type:          domain.InstrumentCard,
				AccountNumber: "4111111111111112",
			}},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidCardNumber.Error())
			},
		},
		{
			name: "CardNumberTooShort",
			input: input{"100.00", domain.FundingInstrument{
				Type:          domain.InstrumentCard,
				AccountNumber: "411111111111",
			}},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidCardNumber.Error())
			},
		},
		{
			name: "CardNumberTooLong",
			input: input{"100.00", domain.FundingInstrument{
				Type:          domain.InstrumentCard,
				AccountNumber: "41111111111111111111",
			}},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidCardNumber.Error())
			},
		},
		{
			name: "BankAccountNumberNotNumeric",
			input: input{"100.00", domain.FundingInstrument{
				Type:          domain.InstrumentBank,
				AccountNumber: "12345abc",
				RoutingNumber: "110000000",
			}},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidBankAccountNumber.Error())
			},
		},
		{
			name: "BankMissingRoutingNumber",
			input: input{"100.00", domain.FundingInstrument{
				Type:          domain.InstrumentBank,
				AccountNumber: "000123456789",
			}},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidRoutingNumber.Error())
			},
		},
		{
			name: "BankRoutingNumberTooShort",
			input: input{"100.00", domain.FundingInstrument{
				Type:          domain.InstrumentBank,
				AccountNumber: "000123456789",
				RoutingNumber: "11000000",
			}},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidRoutingNumber.Error())
			},
		},
		{
			name: "UnsupportedInstrumentType",
			input: input{"100.00", domain.FundingInstrument{
				Type:          "crypto",
				AccountNumber: "000123456789",
			}},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidInstrumentType.Error())
			},
		},
		{
			name:  "ErrAccountNotFound",
			input: input{"100.00", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.FundResult{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:  "ErrAccountNotActive",
			input: input{"100.00", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Fund(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.FundResult{}, domain.ErrAccountNotActive)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotActive.Error())
			},
		},
		{
			name:  "OKCard",
			input: input{"100.00", cardInstrument},
			buildStubs: func(repo *MockRepo) {
				arg := domain.FundParams{
					AccountID:   accountID,
					Owner:       owner,
					Amount:      "100.00",
					Description: "Funding from card",
				}

				repo.EXPECT().Fund(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
		{
			name:  "OKBank",
			input: input{"100.00", bankInstrument},
			buildStubs: func(repo *MockRepo) {
				arg := domain.FundParams{
					AccountID:   accountID,
					Owner:       owner,
					Amount:      "100.00",
					Description: "Funding from bank",
				}

				repo.EXPECT().Fund(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.FundResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)

			transactionService, err := New(transactionRepo, accountGetter, testFundingAmountMax)
			require.NoError(t, err)

			tc.buildStubs(transactionRepo)

			tc.checkResponse(transactionService.Fund(
				context.Background(),
				owner,
				accountID,
				tc.input.amount,
				tc.input.instrument))
		})
	}
}

func TestList(t *testing.T) {
	owner := randompkg.Owner()

	const accountID = int64(1)

	now := time.Now().Truncate(time.Second).UTC()

	transactions := []domain.Transaction{
		{
			ID:          2,
			AccountID:   accountID,
			Type:        domain.Deposit,
			Amount:      "50.00",
			Description: "Funding from bank",
			Status:      domain.TransactionCompleted,
			CreatedAt:   now,
			ProcessedAt: now,
		},
		{
			ID:          1,
			AccountID:   accountID,
			Type:        domain.Deposit,
			Amount:      "100.00",
			Description: "Funding from card",
			Status:      domain.TransactionCompleted,
			CreatedAt:   now.Add(-time.Minute),
			ProcessedAt: now.Add(-time.Minute),
		},
	}

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, accountGetter *MockAccountGetter)
		checkResponse func(res []domain.Transaction, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, accountGetter *MockAccountGetter) {
				accountGetter.EXPECT().
					Get(gomock.Any(), gomock.Eq(accountID), gomock.Eq(owner)).
					Times(1).
					Return(domain.Account{ID: accountID, Owner: owner}, nil)
				repo.EXPECT().List(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(transactions, nil)
			},
			checkResponse: func(res []domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, transactions, res)
			},
		},
		{
			name: "ErrAccountNotFound",
			buildStubs: func(repo *MockRepo, accountGetter *MockAccountGetter) {
				accountGetter.EXPECT().
					Get(gomock.Any(), gomock.Eq(accountID), gomock.Eq(owner)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res []domain.Transaction, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name: "RepoError",
			buildStubs: func(repo *MockRepo, accountGetter *MockAccountGetter) {
				accountGetter.EXPECT().
					Get(gomock.Any(), gomock.Eq(accountID), gomock.Eq(owner)).
					Times(1).
					Return(domain.Account{ID: accountID, Owner: owner}, nil)
				repo.EXPECT().List(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			checkResponse: func(res []domain.Transaction, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			accountGetter := NewMockAccountGetter(ctrl)

			transactionService, err := New(transactionRepo, accountGetter, testFundingAmountMax)
			require.NoError(t, err)

			tc.buildStubs(transactionRepo, accountGetter)

			tc.checkResponse(transactionService.List(context.Background(), owner, accountID))
		})
	}
}

func TestNewRejectsInvalidCeiling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := New(NewMockRepo(ctrl), NewMockAccountGetter(ctrl), "not-a-number")
	require.Error(t, err)
}
