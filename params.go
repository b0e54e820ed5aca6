package dilithium

import "fmt"

// params holds the immutable constants of one parameter set.
type params struct {
	set        ParameterSet
	name       string
	legacyName string

	k, l   int
	eta    int32
	tau    int
	beta   int32
	gamma1 int32
	gamma2 int32
	omega  int

	polyEtaSize int
	polyZSize   int
	polyW1Size  int

	publicKeySize  int
	privateKeySize int
	signatureSize  int
}

func newParams(set ParameterSet, name, legacy string, k, l int, eta int32, tau int, gamma1, gamma2 int32, omega int) *params {
	p := &params{
		set:        set,
		name:       name,
		legacyName: legacy,
		k:          k,
		l:          l,
		eta:        eta,
		tau:        tau,
		beta:       int32(tau) * eta,
		gamma1:     gamma1,
		gamma2:     gamma2,
		omega:      omega,
	}

	switch eta {
	case 2:
		p.polyEtaSize = encodingSize3
	case 4:
		p.polyEtaSize = encodingSize4
	}
	switch gamma1 {
	case gamma1Pow17:
		p.polyZSize = encodingSize18
	case gamma1Pow19:
		p.polyZSize = encodingSize20
	}
	switch gamma2 {
	case gamma2QMinus1Div88:
		p.polyW1Size = encodingSize6
	case gamma2QMinus1Div32:
		p.polyW1Size = encodingSize4
	}

	p.publicKeySize = SeedSize + k*encodingSize10
	p.privateKeySize = 2*SeedSize + crhSize + (k+l)*p.polyEtaSize + k*encodingSize13
	p.signatureSize = cTildeSize + l*p.polyZSize + omega + k

	if err := p.validate(); err != nil {
		panic(err)
	}
	return p
}

// validate rejects combinations the packers and rounding code cannot handle.
func (p *params) validate() error {
	switch {
	case p.polyEtaSize == 0:
		return fmt.Errorf("dilithium: %s: unsupported eta %d", p.name, p.eta)
	case p.polyZSize == 0:
		return fmt.Errorf("dilithium: %s: unsupported gamma1 %d", p.name, p.gamma1)
	case p.polyW1Size == 0:
		return fmt.Errorf("dilithium: %s: unsupported gamma2 %d", p.name, p.gamma2)
	case p.k < 1 || p.l < 1 || p.k > 16 || p.l > 16:
		return fmt.Errorf("dilithium: %s: unsupported dimensions %dx%d", p.name, p.k, p.l)
	case p.omega+p.k > n || p.omega > 255:
		return fmt.Errorf("dilithium: %s: omega %d out of range", p.name, p.omega)
	case p.tau > n || p.tau > 64:
		return fmt.Errorf("dilithium: %s: tau %d out of range", p.name, p.tau)
	}
	return nil
}

var (
	params2 = newParams(Dilithium2, "Dilithium2", "DLTMS1N256Q8380417", 4, 4, 2, 39, gamma1Pow17, gamma2QMinus1Div88, 80)
	params3 = newParams(Dilithium3, "Dilithium3", "DLTMS2N256Q8380417", 6, 5, 4, 49, gamma1Pow19, gamma2QMinus1Div32, 55)
	params5 = newParams(Dilithium5, "Dilithium5", "DLTMS3N256Q8380417", 8, 7, 2, 60, gamma1Pow19, gamma2QMinus1Div32, 75)

	allParams = []*params{params2, params3, params5}
)

func lookupParams(s ParameterSet) *params {
	switch s {
	case Dilithium2:
		return params2
	case Dilithium3:
		return params3
	case Dilithium5:
		return params5
	}
	return nil
}

// paramsFor is lookupParams with the construction-time error attached.
func paramsFor(s ParameterSet) (*params, error) {
	p := lookupParams(s)
	if p == nil {
		return nil, &CryptoError{Op: "select " + s.String(), Err: ErrInvalidParameterSet}
	}
	return p, nil
}
