// Package mocks provides centralized mock implementations for testing.
//
// Store and service mocks are built on testify/mock: set expectations with
// On(...).Return(...) and check them with AssertExpectations. Store mocks
// return themselves from WithTx, so a single set of expectations covers both
// plain and transactional calls.
//
// The auth mocks use function fields instead:
//
//	jwt := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, id uuid.UUID, role domain.Role) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
//
// MockPasswordManager hashes by prefixing "hashed:" so tests can build
// stored users whose passwords compare as expected.
package mocks
