package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewLedgerForTest creates a Ledger config for testing purposes
func NewLedgerForTest(backend, channel, chaincode, orgsPath string) *Ledger {
	return &Ledger{
		backend:   backend,
		channel:   channel,
		chaincode: chaincode,
		orgsPath:  orgsPath,
	}
}

// NewObjectStoreForTest creates an ObjectStore config for testing purposes
func NewObjectStoreForTest(backend string) *ObjectStore {
	return &ObjectStore{backend: backend}
}

// NewTransitForTest creates a Transit config for testing purposes
func NewTransitForTest(backend string) *Transit {
	return &Transit{backend: backend}
}
