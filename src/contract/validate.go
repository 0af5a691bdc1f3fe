package contract

func validateName(name string) error {
	if len(name) == 0 || len(name) > MaxNameLength {
		return ErrValidation("name length must be within 1 and %d", MaxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return ErrValidation("name %s contains invalid characters", name)
	}
	return nil
}

func validateContractTxId(contractTxId string) error {
	if !txIdRegex.MatchString(contractTxId) {
		return ErrValidation("invalid contract tx id")
	}
	return nil
}

func validateTarget(target string) error {
	if target == "" {
		return ErrValidation("target is required")
	}
	return nil
}
