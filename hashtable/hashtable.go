// SPDX-License-Identifier: Unlicense OR MIT

package hashtable

// LocationId is the application's own identifier for a location (e.g. an
// EU5 province tag's numeric id). It plays no role in rendering, only in
// letting the caller associate game data with a GpuLocationIdx.
type LocationId uint32

// LocationFlags is a bitfield of per-location render state.
type LocationFlags uint32

const (
	// NoLocationBorders opts a location out of border drawing.
	NoLocationBorders LocationFlags = 1 << 0
	// Highlighted marks a location as highlighted.
	Highlighted LocationFlags = 1 << 1
)

func (f LocationFlags) Contains(other LocationFlags) bool {
	return f&other == other
}

func (f *LocationFlags) Set(flags LocationFlags)    { *f |= flags }
func (f *LocationFlags) Clear(flags LocationFlags)  { *f &^= flags }
func (f *LocationFlags) Toggle(flags LocationFlags) { *f ^= flags }

// arraysInLocationData is the number of parallel u32 arrays packed into one
// contiguous buffer: color_ids, primary, owner, secondary, flags, location_ids.
const arraysInLocationData = 6

// LocationData is a structure-of-arrays container holding every location
// attribute in a single contiguous []uint32 allocation, so the whole table
// can cross a serialization boundary (e.g. a worker thread) as one buffer.
type LocationData struct {
	data []uint32
}

func allocateLocationData(tableSize int) LocationData {
	return LocationData{data: make([]uint32, tableSize*arraysInLocationData)}
}

func (d *LocationData) chunk() int {
	return len(d.data) / arraysInLocationData
}

func (d *LocationData) subArray(n int) []uint32 {
	chunk := d.chunk()
	return d.data[n*chunk : (n+1)*chunk]
}

func (d *LocationData) ColorIDs() []GpuColor       { return asColors(d.subArray(0)) }
func (d *LocationData) PrimaryColors() []GpuColor  { return asColors(d.subArray(1)) }
func (d *LocationData) OwnerColors() []GpuColor    { return asColors(d.subArray(2)) }
func (d *LocationData) SecondaryColors() []GpuColor { return asColors(d.subArray(3)) }
func (d *LocationData) StateFlags() []LocationFlags { return asFlags(d.subArray(4)) }
func (d *LocationData) LocationIDs() []LocationId   { return asIDs(d.subArray(5)) }

// AsMutData exposes the raw backing buffer, e.g. to accept data sent across
// a worker boundary.
func (d *LocationData) AsMutData() []uint32 { return d.data }

func asColors(s []uint32) []GpuColor {
	out := make([]GpuColor, len(s))
	for i, v := range s {
		out[i] = GpuColor(v)
	}
	return out
}

func asFlags(s []uint32) []LocationFlags {
	out := make([]LocationFlags, len(s))
	for i, v := range s {
		out[i] = LocationFlags(v)
	}
	return out
}

func asIDs(s []uint32) []LocationId {
	out := make([]LocationId, len(s))
	for i, v := range s {
		out[i] = LocationId(v)
	}
	return out
}

// GpuLocationIdx is a direct index into the location arrays, letting a
// caller who already resolved a color skip the hash-and-probe sequence.
type GpuLocationIdx uint32

// LocationArrays is the GPU-resident open-addressed hash table: one entry
// per location, keyed by its palette color.
type LocationArrays struct {
	data LocationData
}

// NewLocationArrays returns an empty table.
func NewLocationArrays() *LocationArrays {
	return &LocationArrays{}
}

// ColorEntry is one (LocationId, color) pair fed to BuildLocationArrays.
type ColorEntry struct {
	ID    LocationId
	Color GpuColor
}

// BuildLocationArrays constructs the hash table from the given entries.
// The table is sized to the next power of two of 2x the entry count
// (minimum 16) for good average-case probe length, then each entry is
// placed by FNV hash with linear probing to the first empty slot.
func BuildLocationArrays(entries []ColorEntry) *LocationArrays {
	tableSize := nextPowerOfTwo(len(entries) * 2)
	if tableSize < 16 {
		tableSize = 16
	}

	data := allocateLocationData(tableSize)
	colorIDs := data.subArray(0)
	locationIDs := data.subArray(5)
	primary, owner, secondary := data.subArray(1), data.subArray(2), data.subArray(3)
	for i := range colorIDs {
		colorIDs[i] = uint32(EmptyColor)
		primary[i] = uint32(EmptyColor)
		owner[i] = uint32(EmptyColor)
		secondary[i] = uint32(EmptyColor)
	}

	for _, e := range entries {
		index := int(e.Color.Fnv()) % tableSize
		for GpuColor(colorIDs[index]) != EmptyColor {
			index = (index + 1) % tableSize
		}
		colorIDs[index] = uint32(e.Color)
		locationIDs[index] = uint32(e.ID)
	}

	return &LocationArrays{data: data}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Len returns the table's slot count (not the number of occupied slots).
func (a *LocationArrays) Len() int { return a.data.chunk() }

func (a *LocationArrays) IsEmpty() bool { return a.Len() == 0 }

// Buffers exposes the backing SoA data for GPU upload.
func (a *LocationArrays) Buffers() *LocationData { return &a.data }

// AsData exposes the raw buffer for serialization across a boundary.
func (a *LocationArrays) AsData() []uint32 { return a.data.data }

// AsMutData exposes the raw buffer for receiving data across a boundary.
func (a *LocationArrays) AsMutData() []uint32 { return a.data.AsMutData() }

// CopyPrimaryToSecondary makes every secondary color equal to its primary,
// disabling stripe rendering — used by map modes like Development that
// shouldn't show the owner/controller stripe split.
func (a *LocationArrays) CopyPrimaryToSecondary() {
	copy(a.data.subArray(3), a.data.subArray(1))
}

// Find looks up target's slot by the same hash-and-probe sequence the
// fragment shader is meant to run: same hash, same stop conditions (match
// or EmptyColor), expected O(1) given the 2x table loading.
func (a *LocationArrays) Find(target GpuColor) (GpuLocationIdx, bool) {
	tableSize := a.data.chunk()
	if tableSize == 0 {
		return 0, false
	}
	colorIDs := a.data.subArray(0)
	index := int(target.Fnv()) % tableSize
	for i := 0; i < tableSize; i++ {
		stored := GpuColor(colorIDs[index])
		if stored == target {
			return GpuLocationIdx(index), true
		}
		if stored == EmptyColor {
			return 0, false
		}
		index = (index + 1) % tableSize
	}
	return 0, false
}

func (a *LocationArrays) LocationIDAt(idx GpuLocationIdx) LocationId {
	return LocationId(a.data.subArray(5)[idx])
}

// GetMut returns a handle for reading/mutating the slot at idx.
func (a *LocationArrays) GetMut(idx GpuLocationIdx) LocationState {
	return LocationState{data: &a.data, index: idx}
}

// IterMut returns an iterator over occupied slots in slot order.
func (a *LocationArrays) IterMut() *LocationArraysIterMut {
	return &LocationArraysIterMut{data: &a.data}
}

// BuildLocationIndex walks every occupied slot once and returns a
// contiguous LocationId -> GpuLocationIdx map. Callers that already know
// their location id but not its color (e.g. applying game-state updates by
// id) use this instead of probing Find with a color they don't have.
func (a *LocationArrays) BuildLocationIndex() map[LocationId]GpuLocationIdx {
	index := make(map[LocationId]GpuLocationIdx, a.Len())
	colorIDs := a.data.subArray(0)
	locationIDs := a.data.subArray(5)
	for i, c := range colorIDs {
		if GpuColor(c) == EmptyColor {
			continue
		}
		index[LocationId(locationIDs[i])] = GpuLocationIdx(i)
	}
	return index
}

// LocationArraysIterMut walks occupied slots in ascending slot order,
// skipping empty ones.
type LocationArraysIterMut struct {
	data  *LocationData
	index GpuLocationIdx
}

// NextLocation advances to and returns the next occupied slot, or false
// when the table is exhausted.
func (it *LocationArraysIterMut) NextLocation() (LocationState, bool) {
	colorIDs := it.data.subArray(0)
	for int(it.index) < len(colorIDs) {
		if GpuColor(colorIDs[it.index]) == EmptyColor {
			it.index++
			continue
		}
		state := LocationState{data: it.data, index: it.index}
		it.index++
		return state, true
	}
	return LocationState{}, false
}

// LocationState is a handle onto one occupied slot's render state.
type LocationState struct {
	data  *LocationData
	index GpuLocationIdx
}

func (s LocationState) Index() GpuLocationIdx { return s.index }

func (s LocationState) LocationID() LocationId {
	return LocationId(s.data.subArray(5)[s.index])
}

func (s LocationState) PrimaryColor() GpuColor {
	return GpuColor(s.data.subArray(1)[s.index])
}

func (s LocationState) OwnerColor() GpuColor {
	return GpuColor(s.data.subArray(2)[s.index])
}

func (s LocationState) SecondaryColor() GpuColor {
	return GpuColor(s.data.subArray(3)[s.index])
}

func (s LocationState) Flags() LocationFlags {
	return LocationFlags(s.data.subArray(4)[s.index])
}

func (s LocationState) SetPrimaryColor(c GpuColor) {
	s.data.subArray(1)[s.index] = uint32(c)
}

func (s LocationState) SetOwnerColor(c GpuColor) {
	s.data.subArray(2)[s.index] = uint32(c)
}

func (s LocationState) SetSecondaryColor(c GpuColor) {
	s.data.subArray(3)[s.index] = uint32(c)
}

func (s LocationState) SetFlags(f LocationFlags) {
	s.data.subArray(4)[s.index] = uint32(f)
}

func (s LocationState) HasFlag(flag LocationFlags) bool {
	return s.Flags().Contains(flag)
}
