package hses

// RegisterMax is the highest addressable register index (0..999, §3.2).
const RegisterMax = 999

// RegisterWritableMax is the highest writable register index (0..559);
// registers 560-999 are read-only (§4.4 scenario 3).
const RegisterWritableMax = 559

// IsWritableRegister reports whether register index addr may be written.
func IsWritableRegister(addr uint16) bool {
	return addr <= RegisterWritableMax
}

// IsValidRegister reports whether register index addr is addressable at
// all (for reads).
func IsValidRegister(addr uint16) bool {
	return addr <= RegisterMax
}

// PluralRegisterCommandID is the command id for the plural register
// command (0x301).
const PluralRegisterCommandID uint16 = 0x301
