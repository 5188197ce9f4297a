package LBM2D

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

/*
	Field file layout, little endian:
		int64      NX
		int64      NY
		float64    velocity magnitude, NY*NX values, row major with row 0 at y = 0
		uint8      airfoil mask, NY*NX values, 1 = solid
*/
func (c *LBM) SaveFields(fileName string) (err error) {
	var (
		file *os.File
	)
	if err = ensureDir(fileName); err != nil {
		return
	}
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()
	if err = c.WriteFields(file); err != nil {
		return
	}
	fmt.Printf("Wrote %d x %d velocity magnitude and mask to %s\n", c.NX, c.NY, fileName)
	return
}

func (c *LBM) WriteFields(w io.Writer) (err error) {
	var (
		vm   = c.VelocityMagnitude()
		mask = make([]uint8, c.NX*c.NY)
	)
	for j, row := range c.mask {
		for i, solid := range row {
			if solid {
				mask[j*c.NX+i] = 1
			}
		}
	}
	for _, data := range []any{int64(c.NX), int64(c.NY), vm.DataP, mask} {
		if err = binary.Write(w, binary.LittleEndian, data); err != nil {
			return
		}
	}
	return
}

// ReadFields reads back a field file written by WriteFields
func ReadFields(r io.Reader) (nx, ny int, velMag []float64, mask [][]bool, err error) {
	var (
		dims [2]int64
	)
	if err = binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return
	}
	nx, ny = int(dims[0]), int(dims[1])
	if nx <= 0 || ny <= 0 {
		err = fmt.Errorf("invalid field dimensions %d x %d", nx, ny)
		return
	}
	velMag = make([]float64, nx*ny)
	if err = binary.Read(r, binary.LittleEndian, velMag); err != nil {
		return
	}
	flat := make([]uint8, nx*ny)
	if err = binary.Read(r, binary.LittleEndian, flat); err != nil {
		return
	}
	mask = make([][]bool, ny)
	for j := range mask {
		mask[j] = make([]bool, nx)
		for i := range mask[j] {
			mask[j][i] = flat[j*nx+i] == 1
		}
	}
	return
}
