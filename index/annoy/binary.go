package annoy

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/LuciAkirami/vegamdb/core"
	"github.com/LuciAkirami/vegamdb/index"
)

// Save writes the header use_pq:bool, num_trees:i32, D:i32, k_leaf:i32,
// search_k:i32, then each tree as a pre-order node stream.
func (a *Annoy) Save(w io.Writer) error {
	if err := writeBool(w, a.usePriorityQueue); err != nil {
		return fmt.Errorf("annoy: write use_pq: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(a.trees))); err != nil {
		return fmt.Errorf("annoy: write num_trees: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(a.dimension)); err != nil {
		return fmt.Errorf("annoy: write dimension: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(a.kLeaf)); err != nil {
		return fmt.Errorf("annoy: write k_leaf: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(a.defaultSearchK)); err != nil {
		return fmt.Errorf("annoy: write search_k: %w", err)
	}

	for _, root := range a.trees {
		if err := saveNode(w, root); err != nil {
			return err
		}
	}
	return nil
}

func saveNode(w io.Writer, nd *node) error {
	if nd.isLeaf() {
		if err := writeBool(w, true); err != nil {
			return fmt.Errorf("annoy: write leaf tag: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, int32(len(nd.bucket))); err != nil {
			return fmt.Errorf("annoy: write bucket size: %w", err)
		}
		ids := make([]int32, len(nd.bucket))
		for i, id := range nd.bucket {
			ids[i] = int32(id)
		}
		if err := binary.Write(w, binary.LittleEndian, ids); err != nil {
			return fmt.Errorf("annoy: write bucket ids: %w", err)
		}
		return nil
	}

	if err := writeBool(w, false); err != nil {
		return fmt.Errorf("annoy: write inner tag: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, nd.w); err != nil {
		return fmt.Errorf("annoy: write hyperplane normal: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, nd.bias); err != nil {
		return fmt.Errorf("annoy: write hyperplane bias: %w", err)
	}
	if err := saveNode(w, nd.left); err != nil {
		return err
	}
	return saveNode(w, nd.right)
}

// Load mirrors Save: it reads the header, then reconstructs each tree by
// recursively reading leaf tags in the same pre-order they were written.
func (a *Annoy) Load(r io.Reader, dim int) error {
	usePQ, err := readBool(r)
	if err != nil {
		return fmt.Errorf("annoy: read use_pq: %w", err)
	}

	var numTrees, d, kLeaf, searchK int32
	if err := binary.Read(r, binary.LittleEndian, &numTrees); err != nil {
		return fmt.Errorf("annoy: read num_trees: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
		return fmt.Errorf("annoy: read dimension: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &kLeaf); err != nil {
		return fmt.Errorf("annoy: read k_leaf: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &searchK); err != nil {
		return fmt.Errorf("annoy: read search_k: %w", err)
	}
	if numTrees < 0 || d < 0 || kLeaf < 0 {
		return &index.ErrCorruptPayload{Index: a.Name(), Reason: "negative header field"}
	}

	trees := make([]*node, numTrees)
	for i := range trees {
		nd, err := loadNode(r, int(d))
		if err != nil {
			return err
		}
		trees[i] = nd
	}

	a.usePriorityQueue = usePQ
	a.numTrees = int(numTrees)
	a.dimension = int(d)
	a.kLeaf = int(kLeaf)
	a.defaultSearchK = int(searchK)
	a.trees = trees
	return nil
}

func loadNode(r io.Reader, dim int) (*node, error) {
	isLeaf, err := readBool(r)
	if err != nil {
		return nil, fmt.Errorf("annoy: read node tag: %w", err)
	}

	if isLeaf {
		var bucketSize int32
		if err := binary.Read(r, binary.LittleEndian, &bucketSize); err != nil {
			return nil, fmt.Errorf("annoy: read bucket size: %w", err)
		}
		if bucketSize < 0 {
			return nil, &index.ErrCorruptPayload{Index: "AnnoyIndex", Reason: "negative bucket size"}
		}
		raw := make([]int32, bucketSize)
		if bucketSize > 0 {
			if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
				return nil, fmt.Errorf("annoy: read bucket ids: %w", err)
			}
		}
		bucket := make([]core.LocalID, bucketSize)
		for i, v := range raw {
			bucket[i] = core.LocalID(v)
		}
		return &node{bucket: bucket}, nil
	}

	w := make([]float32, dim)
	if err := binary.Read(r, binary.LittleEndian, w); err != nil {
		return nil, fmt.Errorf("annoy: read hyperplane normal: %w", err)
	}
	var bias float32
	if err := binary.Read(r, binary.LittleEndian, &bias); err != nil {
		return nil, fmt.Errorf("annoy: read hyperplane bias: %w", err)
	}

	left, err := loadNode(r, dim)
	if err != nil {
		return nil, err
	}
	right, err := loadNode(r, dim)
	if err != nil {
		return nil, err
	}

	return &node{w: w, bias: bias, left: left, right: right}, nil
}

func writeBool(w io.Writer, b bool) error {
	var v byte
	if b {
		v = 1
	}
	_, err := w.Write([]byte{v})
	return err
}

func readBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}
