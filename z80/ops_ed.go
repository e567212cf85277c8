package z80

func (c *CPU) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = (*CPU).opEDUnimplemented
	}

	c.edOps[0x40] = (*CPU).opINBC
	c.edOps[0x48] = (*CPU).opINRC
	c.edOps[0x50] = (*CPU).opINDC
	c.edOps[0x58] = (*CPU).opINEC
	c.edOps[0x60] = (*CPU).opINHC
	c.edOps[0x68] = (*CPU).opINLC
	c.edOps[0x70] = (*CPU).opINCM
	c.edOps[0x78] = (*CPU).opINAC

	c.edOps[0x41] = (*CPU).opOUTBC
	c.edOps[0x49] = (*CPU).opOUTCC
	c.edOps[0x51] = (*CPU).opOUTDC
	c.edOps[0x59] = (*CPU).opOUTEC
	c.edOps[0x61] = (*CPU).opOUTHC
	c.edOps[0x69] = (*CPU).opOUTLC
	c.edOps[0x71] = (*CPU).opOUTC0
	c.edOps[0x79] = (*CPU).opOUTAC

	c.edOps[0x44] = (*CPU).opNEG
	c.edOps[0x4C] = (*CPU).opNEG
	c.edOps[0x54] = (*CPU).opNEG
	c.edOps[0x5C] = (*CPU).opNEG
	c.edOps[0x64] = (*CPU).opNEG
	c.edOps[0x6C] = (*CPU).opNEG
	c.edOps[0x74] = (*CPU).opNEG
	c.edOps[0x7C] = (*CPU).opNEG

	c.edOps[0x47] = (*CPU).opLDIA
	c.edOps[0x4F] = (*CPU).opLDRA
	c.edOps[0x57] = (*CPU).opLDAI
	c.edOps[0x5F] = (*CPU).opLDAR

	c.edOps[0x46] = (*CPU).opIM0
	c.edOps[0x56] = (*CPU).opIM1
	c.edOps[0x5E] = (*CPU).opIM2
	c.edOps[0x66] = (*CPU).opIM0
	c.edOps[0x6E] = (*CPU).opIM0
	c.edOps[0x76] = (*CPU).opIM1
	c.edOps[0x7E] = (*CPU).opIM2

	c.edOps[0x45] = (*CPU).opRETN
	c.edOps[0x4D] = (*CPU).opRETI
	c.edOps[0x55] = (*CPU).opRETN
	c.edOps[0x5D] = (*CPU).opRETN
	c.edOps[0x65] = (*CPU).opRETN
	c.edOps[0x6D] = (*CPU).opRETN
	c.edOps[0x75] = (*CPU).opRETN
	c.edOps[0x7D] = (*CPU).opRETN

	c.edOps[0x67] = (*CPU).opRRD
	c.edOps[0x6F] = (*CPU).opRLD

	c.edOps[0xA0] = (*CPU).opLDI
	c.edOps[0xB0] = (*CPU).opLDIR
	c.edOps[0xA8] = (*CPU).opLDD
	c.edOps[0xB8] = (*CPU).opLDDR
	c.edOps[0xA1] = (*CPU).opCPI
	c.edOps[0xB1] = (*CPU).opCPIR
	c.edOps[0xA9] = (*CPU).opCPD
	c.edOps[0xB9] = (*CPU).opCPDR
	c.edOps[0xA2] = (*CPU).opINI
	c.edOps[0xB2] = (*CPU).opINIR
	c.edOps[0xAA] = (*CPU).opIND
	c.edOps[0xBA] = (*CPU).opINDR
	c.edOps[0xA3] = (*CPU).opOUTI
	c.edOps[0xB3] = (*CPU).opOTIR
	c.edOps[0xAB] = (*CPU).opOUTD
	c.edOps[0xBB] = (*CPU).opOTDR

	c.edOps[0x43] = (*CPU).opLDNNBC
	c.edOps[0x4B] = (*CPU).opLDBCNNED
	c.edOps[0x53] = (*CPU).opLDNNDE
	c.edOps[0x5B] = (*CPU).opLDDENNED
	c.edOps[0x63] = (*CPU).opLDNNHLed
	c.edOps[0x6B] = (*CPU).opLDHLNNed
	c.edOps[0x73] = (*CPU).opLDNNSP
	c.edOps[0x7B] = (*CPU).opLDSPNNED

	c.edOps[0x4A] = (*CPU).opADCHLBC
	c.edOps[0x5A] = (*CPU).opADCHLDE
	c.edOps[0x6A] = (*CPU).opADCHLHL
	c.edOps[0x7A] = (*CPU).opADCHLSP
	c.edOps[0x42] = (*CPU).opSBCHLBC
	c.edOps[0x52] = (*CPU).opSBCHLDE
	c.edOps[0x62] = (*CPU).opSBCHLHL
	c.edOps[0x72] = (*CPU).opSBCHLSP
}

func (c *CPU) opEDUnimplemented() {
	c.tick(8)
}

func (c *CPU) inRegC(dest *byte) {
	value := c.in(c.BC())
	c.WZ = c.BC() + 1
	*dest = value
	c.updateInFlags(value)
	c.tick(12)
}

func (c *CPU) outRegC(value byte) {
	c.out(c.BC(), value)
	c.WZ = c.BC() + 1
	c.tick(12)
}

func (c *CPU) opINBC() { c.inRegC(&c.B) }
func (c *CPU) opINRC() { c.inRegC(&c.C) }
func (c *CPU) opINDC() { c.inRegC(&c.D) }
func (c *CPU) opINEC() { c.inRegC(&c.E) }
func (c *CPU) opINHC() { c.inRegC(&c.H) }
func (c *CPU) opINLC() { c.inRegC(&c.L) }
func (c *CPU) opINAC() { c.inRegC(&c.A) }

func (c *CPU) opINCM() {
	value := c.in(c.BC())
	c.WZ = c.BC() + 1
	c.updateInFlags(value)
	c.tick(12)
}

func (c *CPU) opOUTBC() { c.outRegC(c.B) }
func (c *CPU) opOUTCC() { c.outRegC(c.C) }
func (c *CPU) opOUTDC() { c.outRegC(c.D) }
func (c *CPU) opOUTEC() { c.outRegC(c.E) }
func (c *CPU) opOUTHC() { c.outRegC(c.H) }
func (c *CPU) opOUTLC() { c.outRegC(c.L) }
func (c *CPU) opOUTAC() { c.outRegC(c.A) }
func (c *CPU) opOUTC0() { c.outRegC(0x00) }

func (c *CPU) opNEG() {
	a := c.A
	res := byte(0 - int(a))
	c.A = res
	c.F = FlagN
	if res == 0 {
		c.F |= FlagZ
	}
	if res&0x80 != 0 {
		c.F |= FlagS
	}
	if a&0x0F != 0 {
		c.F |= FlagH
	}
	if a == 0x80 {
		c.F |= FlagPV
	}
	if a != 0 {
		c.F |= FlagC
	}
	c.F |= res & (FlagX | FlagY)
	c.tick(8)
}

func (c *CPU) opLDIA() { c.I = c.A; c.tick(9) }
func (c *CPU) opLDRA() { c.R = c.A; c.tick(9) }

func (c *CPU) opLDAI() {
	c.A = c.I
	c.updateLDAIRFlags()
	c.tick(9)
}

func (c *CPU) opLDAR() {
	c.A = c.R
	c.updateLDAIRFlags()
	c.tick(9)
}

func (c *CPU) opIM0() { c.IM = 0; c.tick(8) }
func (c *CPU) opIM1() { c.IM = 1; c.tick(8) }
func (c *CPU) opIM2() { c.IM = 2; c.tick(8) }

func (c *CPU) opRETN() {
	c.PC = c.popWord()
	c.WZ = c.PC
	c.IFF1 = c.IFF2
	c.tick(14)
}

func (c *CPU) opRETI() {
	c.PC = c.popWord()
	c.WZ = c.PC
	c.IFF1 = c.IFF2
	c.tick(14)
}

func (c *CPU) opRRD() {
	addr := c.HL()
	value := c.read(addr)
	c.write(addr, (value>>4)|(c.A<<4))
	c.A = (c.A & 0xF0) | (value & 0x0F)
	c.WZ = addr + 1
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

func (c *CPU) opRLD() {
	addr := c.HL()
	value := c.read(addr)
	c.write(addr, (value<<4)|(c.A&0x0F))
	c.A = (c.A & 0xF0) | (value >> 4)
	c.WZ = addr + 1
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

func (c *CPU) opLDI() {
	value := c.read(c.HL())
	c.write(c.DE(), value)
	c.SetHL(c.HL() + 1)
	c.SetDE(c.DE() + 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.updateLDIFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opLDIR() {
	c.opLDI()
	if c.BC() != 0 {
		c.PC -= 2
		c.WZ = c.PC + 1
		c.tick(5)
	}
}

func (c *CPU) opLDD() {
	value := c.read(c.HL())
	c.write(c.DE(), value)
	c.SetHL(c.HL() - 1)
	c.SetDE(c.DE() - 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.updateLDIFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opLDDR() {
	c.opLDD()
	if c.BC() != 0 {
		c.PC -= 2
		c.WZ = c.PC + 1
		c.tick(5)
	}
}

// opCPI implements CPI's compare-and-advance semantics, including the
// undocumented F5/F3 bits (from updateCPIFlags) and MEMPTR tracking: WZ
// advances by one each iteration, mirroring how the real CPU increments its
// internal address latch alongside HL.
func (c *CPU) opCPI() {
	value := c.read(c.HL())
	c.SetHL(c.HL() + 1)
	c.WZ++
	bc := c.BC() - 1
	c.SetBC(bc)
	c.subA(value, 0, false)
	c.updateCPIFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opCPIR() {
	c.opCPI()
	if c.BC() != 0 && !c.Flag(FlagZ) {
		c.PC -= 2
		c.WZ = c.PC + 1
		c.tick(5)
	}
}

func (c *CPU) opCPD() {
	value := c.read(c.HL())
	c.SetHL(c.HL() - 1)
	c.WZ--
	bc := c.BC() - 1
	c.SetBC(bc)
	c.subA(value, 0, false)
	c.updateCPIFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opCPDR() {
	c.opCPD()
	if c.BC() != 0 && !c.Flag(FlagZ) {
		c.PC -= 2
		c.WZ = c.PC + 1
		c.tick(5)
	}
}

func (c *CPU) opINI() {
	port := c.BC()
	value := c.in(port)
	c.WZ = port + 1
	c.write(c.HL(), value)
	c.B--
	c.SetHL(c.HL() + 1)
	k := uint16(value) + uint16(c.C+1)
	c.updateBlockIOFlags(value, k, c.B)
	c.tick(16)
}

func (c *CPU) opINIR() {
	c.opINI()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opIND() {
	port := c.BC()
	value := c.in(port)
	c.WZ = port - 1
	c.write(c.HL(), value)
	c.B--
	c.SetHL(c.HL() - 1)
	k := uint16(value) + uint16(c.C-1)
	c.updateBlockIOFlags(value, k, c.B)
	c.tick(16)
}

func (c *CPU) opINDR() {
	c.opIND()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opOUTI() {
	value := c.read(c.HL())
	c.B--
	c.out(c.BC(), value)
	c.WZ = c.BC() + 1
	c.SetHL(c.HL() + 1)
	k := uint16(value) + uint16(c.L)
	c.updateBlockIOFlags(value, k, c.B)
	c.tick(16)
}

func (c *CPU) opOTIR() {
	c.opOUTI()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opOUTD() {
	value := c.read(c.HL())
	c.B--
	c.out(c.BC(), value)
	c.WZ = c.BC() - 1
	c.SetHL(c.HL() - 1)
	k := uint16(value) + uint16(c.L)
	c.updateBlockIOFlags(value, k, c.B)
	c.tick(16)
}

func (c *CPU) opOTDR() {
	c.opOUTD()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opLDNNBC() {
	addr := c.fetchWord()
	value := c.BC()
	c.write(addr, byte(value))
	c.write(addr+1, byte(value>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDBCNNED() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.SetBC(uint16(high)<<8 | uint16(low))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDNNDE() {
	addr := c.fetchWord()
	value := c.DE()
	c.write(addr, byte(value))
	c.write(addr+1, byte(value>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDDENNED() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.SetDE(uint16(high)<<8 | uint16(low))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDNNHLed() {
	addr := c.fetchWord()
	value := c.HL()
	c.write(addr, byte(value))
	c.write(addr+1, byte(value>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDHLNNed() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.SetHL(uint16(high)<<8 | uint16(low))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDNNSP() {
	addr := c.fetchWord()
	c.write(addr, byte(c.SP))
	c.write(addr+1, byte(c.SP>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDSPNNED() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.SP = uint16(high)<<8 | uint16(low)
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opADCHLBC() { c.adcHL(c.BC()); c.tick(15) }
func (c *CPU) opADCHLDE() { c.adcHL(c.DE()); c.tick(15) }
func (c *CPU) opADCHLHL() { c.adcHL(c.HL()); c.tick(15) }
func (c *CPU) opADCHLSP() { c.adcHL(c.SP); c.tick(15) }
func (c *CPU) opSBCHLBC() { c.sbcHL(c.BC()); c.tick(15) }
func (c *CPU) opSBCHLDE() { c.sbcHL(c.DE()); c.tick(15) }
func (c *CPU) opSBCHLHL() { c.sbcHL(c.HL()); c.tick(15) }
func (c *CPU) opSBCHLSP() { c.sbcHL(c.SP); c.tick(15) }
