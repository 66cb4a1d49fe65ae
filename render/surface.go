package render

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/cwbudde/algo-swv/dsp/grid"
	"github.com/cwbudde/algo-swv/swv/extract"
)

// Surface renders the response grid as a shaded wireframe surface in an
// axonometric projection. The display mesh is capped at st.MeshRows by
// st.MeshCols quads regardless of the data shape.
func Surface(g *extract.Grid, st Style) (image.Image, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	w, h := st.pixelSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	lfMin, lfMax := grid.MinMax(g.LogFreqs)
	eMin, eMax := grid.MinMax(g.Potentials)
	if lfMin == lfMax || eMin == eMax {
		return nil, ErrDegenerateAxis
	}

	minZ, maxZ := gridMinMax(g.Z)
	zSpan := maxZ - minZ
	if zSpan == 0 {
		zSpan = 1
	}

	rows := downsampleIndices(len(g.Potentials), st.MeshRows)
	cols := downsampleIndices(len(g.LogFreqs), st.MeshCols)

	eAxis := make([]float64, len(rows))
	for i, r := range rows {
		eAxis[i] = g.Potentials[r]
	}
	lfAxis := make([]float64, len(cols))
	for j, c := range cols {
		lfAxis[j] = g.LogFreqs[c]
	}

	lfMesh, eMesh := grid.Meshgrid(lfAxis, eAxis)

	// Screen-space vertices of the downsampled mesh.
	px := make([][]int, len(rows))
	py := make([][]int, len(rows))
	for i := range rows {
		px[i] = make([]int, len(cols))
		py[i] = make([]int, len(cols))
		for j := range cols {
			u := (lfMesh[i][j] - lfMin) / (lfMax - lfMin)
			v := (eMesh[i][j] - eMin) / (eMax - eMin)
			z := (g.Z[rows[i]][cols[j]] - minZ) / zSpan
			px[i][j], py[i][j] = project(u, v, z, w, h)
		}
	}

	type quad struct {
		i, j  int
		depth float64
	}

	quads := make([]quad, 0, (len(rows)-1)*(len(cols)-1))
	for i := 0; i < len(rows)-1; i++ {
		for j := 0; j < len(cols)-1; j++ {
			u := (lfMesh[i][j] - lfMin) / (lfMax - lfMin)
			v := (eMesh[i][j] - eMin) / (eMax - eMin)
			quads = append(quads, quad{i: i, j: j, depth: u + v})
		}
	}

	// Painter's order: farthest quads first.
	sort.Slice(quads, func(a, b int) bool { return quads[a].depth < quads[b].depth })

	for _, q := range quads {
		i, j := q.i, q.j
		xs := [4]int{px[i][j], px[i][j+1], px[i+1][j+1], px[i+1][j]}
		ys := [4]int{py[i][j], py[i][j+1], py[i+1][j+1], py[i+1][j]}

		mean := (g.Z[rows[i]][cols[j]] + g.Z[rows[i]][cols[j+1]] +
			g.Z[rows[i+1]][cols[j+1]] + g.Z[rows[i+1]][cols[j]]) / 4
		fill := st.Colormap((mean - minZ) / zSpan)
		fillQuad(img, xs, ys, fill)

		edge := color.RGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 255}
		for k := 0; k < 4; k++ {
			n := (k + 1) % 4
			drawLine(img, xs[k], ys[k], xs[n], ys[n], edge)
		}
	}

	drawText(img, w*8/100, h-h*4/100, "log[ f(Hz) ]", st.Face, color.Black)
	drawText(img, w-w*30/100, h-h*4/100, "E, V vs NHE", st.Face, color.Black)

	return img, nil
}

// project maps normalized surface coordinates to the screen with a fixed
// axonometric view.
func project(u, v, z float64, w, h int) (int, int) {
	const (
		tilt = 0.45
		lift = 0.35
	)

	sx := 0.12 + 0.38*(u+v)
	sy := 0.78 - tilt*(v-u)*0.5 - lift*z - 0.18*(u+v)*0.5

	return int(sx * float64(w)), int(sy * float64(h))
}

// downsampleIndices picks at most limit+1 roughly uniform indices out of n,
// always keeping the endpoints.
func downsampleIndices(n, limit int) []int {
	if limit < 1 {
		limit = 1
	}
	if n <= limit+1 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	out := make([]int, limit+1)
	for i := range out {
		out[i] = i * (n - 1) / limit
	}
	out[limit] = n - 1

	return out
}
