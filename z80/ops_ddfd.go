package z80

func (c *CPU) initDDOps() {
	for i := range c.ddOps {
		c.ddOps[i] = (*CPU).opDDUnimplemented
	}
	c.ddOps[0x21] = (*CPU).opLDIXNN
	c.ddOps[0x22] = (*CPU).opLDNNIX
	c.ddOps[0x2A] = (*CPU).opLDIXNNMem
	c.ddOps[0xE5] = (*CPU).opPUSHIX
	c.ddOps[0xE1] = (*CPU).opPOPIX
	c.ddOps[0xF9] = (*CPU).opLDSPX
	c.ddOps[0x36] = (*CPU).opLDIXdN
	c.ddOps[0x34] = (*CPU).opINCIXd
	c.ddOps[0x35] = (*CPU).opDECIXd
	c.ddOps[0xE9] = (*CPU).opJPIX
	c.ddOps[0xCB] = (*CPU).opDDCBPrefix
	c.ddOps[0xE3] = (*CPU).opEXSPIX
	c.ddOps[0x09] = (*CPU).opADDIXBC
	c.ddOps[0x19] = (*CPU).opADDIXDE
	c.ddOps[0x29] = (*CPU).opADDIXIX
	c.ddOps[0x39] = (*CPU).opADDIXSP
	c.ddOps[0x23] = (*CPU).opINCIX
	c.ddOps[0x2B] = (*CPU).opDECIX

	for opcode := byte(0x46); opcode <= 0x7E; opcode += 0x08 {
		if opcode == 0x76 {
			continue
		}
		op := opcode
		dest := byte((op >> 3) & 0x07)
		c.ddOps[op] = func(cpu *CPU) { cpu.opLDRegIXd(dest) }
	}
	for opcode := byte(0x70); opcode <= 0x77; opcode++ {
		if opcode == 0x76 {
			continue
		}
		op := opcode
		src := byte(op & 0x07)
		c.ddOps[op] = func(cpu *CPU) { cpu.opLDIXdReg(src) }
	}
	for opcode := byte(0x86); opcode <= 0xBE; opcode += 0x08 {
		op := opcode
		alu := aluOp((op >> 3) & 0x07)
		c.ddOps[op] = func(cpu *CPU) { cpu.opALUIXd(alu) }
	}
}

func (c *CPU) initFDOps() {
	for i := range c.fdOps {
		c.fdOps[i] = (*CPU).opFDUnimplemented
	}
	c.fdOps[0x21] = (*CPU).opLDIYNN
	c.fdOps[0x22] = (*CPU).opLDNNIY
	c.fdOps[0x2A] = (*CPU).opLDIYNNMem
	c.fdOps[0xE5] = (*CPU).opPUSHIY
	c.fdOps[0xE1] = (*CPU).opPOPIY
	c.fdOps[0xF9] = (*CPU).opLDSPY
	c.fdOps[0x36] = (*CPU).opLDIYdN
	c.fdOps[0x34] = (*CPU).opINCIYd
	c.fdOps[0x35] = (*CPU).opDECIYd
	c.fdOps[0xE9] = (*CPU).opJPIY
	c.fdOps[0xCB] = (*CPU).opFDCBPrefix
	c.fdOps[0xE3] = (*CPU).opEXSPIY
	c.fdOps[0x09] = (*CPU).opADDIYBC
	c.fdOps[0x19] = (*CPU).opADDIYDE
	c.fdOps[0x29] = (*CPU).opADDIYIY
	c.fdOps[0x39] = (*CPU).opADDIYSP
	c.fdOps[0x23] = (*CPU).opINCIY
	c.fdOps[0x2B] = (*CPU).opDECIY

	for opcode := byte(0x46); opcode <= 0x7E; opcode += 0x08 {
		if opcode == 0x76 {
			continue
		}
		op := opcode
		dest := byte((op >> 3) & 0x07)
		c.fdOps[op] = func(cpu *CPU) { cpu.opLDRegIYd(dest) }
	}
	for opcode := byte(0x70); opcode <= 0x77; opcode++ {
		if opcode == 0x76 {
			continue
		}
		op := opcode
		src := byte(op & 0x07)
		c.fdOps[op] = func(cpu *CPU) { cpu.opLDIYdReg(src) }
	}
	for opcode := byte(0x86); opcode <= 0xBE; opcode += 0x08 {
		op := opcode
		alu := aluOp((op >> 3) & 0x07)
		c.fdOps[op] = func(cpu *CPU) { cpu.opALUIYd(alu) }
	}
}

func (c *CPU) opDDUnimplemented() {
	c.tick(4)
	c.baseOps[c.prefixOpcode](c)
}

func (c *CPU) opFDUnimplemented() {
	c.tick(4)
	c.baseOps[c.prefixOpcode](c)
}

func (c *CPU) opLDIXNN() { c.IX = c.fetchWord(); c.tick(14) }

func (c *CPU) opLDNNIX() {
	addr := c.fetchWord()
	c.write(addr, byte(c.IX))
	c.write(addr+1, byte(c.IX>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDIXNNMem() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.IX = uint16(high)<<8 | uint16(low)
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opPUSHIX() { c.pushWord(c.IX); c.tick(15) }
func (c *CPU) opPOPIX()  { c.IX = c.popWord(); c.tick(14) }
func (c *CPU) opLDSPX()  { c.SP = c.IX; c.tick(10) }

func (c *CPU) opLDIXdN() {
	disp := int8(c.fetchByte())
	value := c.fetchByte()
	addr := uint16(int32(c.IX) + int32(disp))
	c.WZ = addr
	c.write(addr, value)
	c.tick(19)
}

func (c *CPU) opINCIXd() {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IX) + int32(disp))
	c.WZ = addr
	c.write(addr, c.inc8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opDECIXd() {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IX) + int32(disp))
	c.WZ = addr
	c.write(addr, c.dec8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opJPIX() { c.PC = c.IX; c.tick(8) }

func (c *CPU) opEXSPIX() {
	low := c.read(c.SP)
	high := c.read(c.SP + 1)
	memVal := uint16(high)<<8 | uint16(low)
	c.write(c.SP, byte(c.IX))
	c.write(c.SP+1, byte(c.IX>>8))
	c.IX = memVal
	c.WZ = memVal
	c.tick(23)
}

func (c *CPU) opADDIXBC() { c.addIX(c.BC()); c.tick(15) }
func (c *CPU) opADDIXDE() { c.addIX(c.DE()); c.tick(15) }
func (c *CPU) opADDIXIX() { c.addIX(c.IX); c.tick(15) }
func (c *CPU) opADDIXSP() { c.addIX(c.SP); c.tick(15) }
func (c *CPU) opINCIX()   { c.IX++; c.tick(10) }
func (c *CPU) opDECIX()   { c.IX--; c.tick(10) }

func (c *CPU) opLDIYNN() { c.IY = c.fetchWord(); c.tick(14) }

func (c *CPU) opLDNNIY() {
	addr := c.fetchWord()
	c.write(addr, byte(c.IY))
	c.write(addr+1, byte(c.IY>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDIYNNMem() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.IY = uint16(high)<<8 | uint16(low)
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opPUSHIY() { c.pushWord(c.IY); c.tick(15) }
func (c *CPU) opPOPIY()  { c.IY = c.popWord(); c.tick(14) }
func (c *CPU) opLDSPY()  { c.SP = c.IY; c.tick(10) }

func (c *CPU) opLDIYdN() {
	disp := int8(c.fetchByte())
	value := c.fetchByte()
	addr := uint16(int32(c.IY) + int32(disp))
	c.WZ = addr
	c.write(addr, value)
	c.tick(19)
}

func (c *CPU) opINCIYd() {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IY) + int32(disp))
	c.WZ = addr
	c.write(addr, c.inc8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opDECIYd() {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IY) + int32(disp))
	c.WZ = addr
	c.write(addr, c.dec8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opJPIY() { c.PC = c.IY; c.tick(8) }

func (c *CPU) opEXSPIY() {
	low := c.read(c.SP)
	high := c.read(c.SP + 1)
	memVal := uint16(high)<<8 | uint16(low)
	c.write(c.SP, byte(c.IY))
	c.write(c.SP+1, byte(c.IY>>8))
	c.IY = memVal
	c.WZ = memVal
	c.tick(23)
}

func (c *CPU) opADDIYBC() { c.addIY(c.BC()); c.tick(15) }
func (c *CPU) opADDIYDE() { c.addIY(c.DE()); c.tick(15) }
func (c *CPU) opADDIYIY() { c.addIY(c.IY); c.tick(15) }
func (c *CPU) opADDIYSP() { c.addIY(c.SP); c.tick(15) }
func (c *CPU) opINCIY()   { c.IY++; c.tick(10) }
func (c *CPU) opDECIY()   { c.IY--; c.tick(10) }

func (c *CPU) opLDRegIXd(dest byte) {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IX) + int32(disp))
	c.WZ = addr
	c.writeReg8Plain(dest, c.read(addr))
	c.tick(19)
}

func (c *CPU) opLDIXdReg(src byte) {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IX) + int32(disp))
	c.WZ = addr
	c.write(addr, c.readReg8Plain(src))
	c.tick(19)
}

func (c *CPU) opALUIXd(op aluOp) {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IX) + int32(disp))
	c.WZ = addr
	c.performALU(op, c.read(addr))
	c.tick(19)
}

func (c *CPU) opLDRegIYd(dest byte) {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IY) + int32(disp))
	c.WZ = addr
	c.writeReg8Plain(dest, c.read(addr))
	c.tick(19)
}

func (c *CPU) opLDIYdReg(src byte) {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IY) + int32(disp))
	c.WZ = addr
	c.write(addr, c.readReg8Plain(src))
	c.tick(19)
}

func (c *CPU) opALUIYd(op aluOp) {
	disp := int8(c.fetchByte())
	addr := uint16(int32(c.IY) + int32(disp))
	c.WZ = addr
	c.performALU(op, c.read(addr))
	c.tick(19)
}
